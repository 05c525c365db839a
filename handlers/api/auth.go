// handlers/api/auth.go
package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/config"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/email"
)

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Server   string `json:"server,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// AuthHandler verifies IMAP credentials at login and seals them into the
// session for later message retrieval.
type AuthHandler struct {
	store  *session.Store
	config *config.Config
}

func NewAuthHandler(store *session.Store, config *config.Config) *AuthHandler {
	return &AuthHandler{store: store, config: config}
}

// HandleLogin authenticates against the IMAP server and, on success, stores
// encrypted credentials plus a JWT token in the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var creds Credentials
	if err := c.BodyParser(&creds); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid login payload")
	}
	if creds.Email == "" || creds.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	server := creds.Server
	if server == "" {
		server = h.config.IMAP.Server
	}
	if server == "" {
		// Last-resort guess when nothing is configured.
		server = "imap." + GetDomainFromEmail(creds.Email)
	}
	port := creds.Port
	if port == 0 {
		port = h.config.IMAP.Port
	}

	client, err := email.NewClient(server, port, creds.Email, creds.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication failed")
	}
	client.Close()

	creds.Server = server
	creds.Port = port

	encrypted, err := EncryptCredentials(creds, h.config.Session.EncryptionKey)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to secure credentials")
	}

	token, err := GenerateToken(GetUsernameFromEmail(creds.Email), creds.Email, h.config.Session.JWTSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session error")
	}
	sess.Set("authenticated", true)
	sess.Set("email", creds.Email)
	sess.Set("username", GetUsernameFromEmail(creds.Email))
	sess.Set("credentials", encrypted)
	sess.Set("token", token)
	sess.SetExpiry(h.config.Session.Timeout.Duration)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save session")
	}

	return c.JSON(fiber.Map{"token": token})
}

// HandleLogout destroys the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		sess.Destroy()
	}
	return c.Redirect("/login")
}

// GenerateToken creates a new JWT token for the user
func GenerateToken(username, email, secret string) (string, error) {
	claims := Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the JWT token and returns the claims
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// EncryptCredentials seals the credentials with AES-GCM.
func EncryptCredentials(creds Credentials, key string) (string, error) {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("failed to marshal credentials: %v", err)
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %v", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %v", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to create nonce: %v", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptCredentials decrypts the stored credentials
func DecryptCredentials(encryptedStr, key string) (*Credentials, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %v", err)
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %v", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %v", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %v", err)
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %v", err)
	}

	return &creds, nil
}

// GetCredentials safely retrieves and decrypts credentials from session
func GetCredentials(c *fiber.Ctx, store *session.Store, encryptionKey string) (*Credentials, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %v", err)
	}

	encryptedCreds := sess.Get("credentials")
	if encryptedCreds == nil {
		return nil, fmt.Errorf("no credentials found in session")
	}

	encryptedStr, ok := encryptedCreds.(string)
	if !ok {
		return nil, fmt.Errorf("invalid credentials format")
	}

	return DecryptCredentials(encryptedStr, encryptionKey)
}

// SessionMiddleware checks if the user is authenticated, either through the
// session cookie or through the JWT issued at login sent as a bearer token.
func SessionMiddleware(store *session.Store, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err == nil {
			authenticated := sess.Get("authenticated")
			if authenticated == true {
				if username := sess.Get("username"); username != nil {
					c.Locals("username", username)
				}
				if email := sess.Get("email"); email != nil {
					c.Locals("email", email)
				}
				return c.Next()
			}
		}

		// Validate Authorization header
		token := c.Get("Authorization")
		if token == "" || len(token) < 8 || token[:7] != "Bearer " {
			return unauthenticated(c)
		}

		claims, err := ValidateToken(token[7:], secret)
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals("username", claims.Username)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	if IsAPIRequest(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	return c.Redirect("/login")
}
