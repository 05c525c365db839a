package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const testSecret = "test-signing-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" || claims.Email != "alice@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token, "some-other-secret"); err == nil {
		t.Fatalf("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", testSecret); err == nil {
		t.Fatalf("expected validation to fail for malformed token")
	}
}

func middlewareApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	store := session.New()
	app.Get("/api/whoami", SessionMiddleware(store, testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": c.Locals("username")})
	})
	return app
}

func TestSessionMiddlewareBearerToken(t *testing.T) {
	app := middlewareApp(t)

	token, err := GenerateToken("alice", "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 with valid bearer token", resp.StatusCode)
	}
}

func TestSessionMiddlewareRejectsMissingAuth(t *testing.T) {
	app := middlewareApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/whoami", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without session or token", resp.StatusCode)
	}
}

func TestSessionMiddlewareRejectsBadToken(t *testing.T) {
	app := middlewareApp(t)

	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer"} {
		req := httptest.NewRequest("GET", "/api/whoami", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, resp.StatusCode)
		}
	}
}
