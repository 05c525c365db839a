// handlers/api/utils.go
package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetDomainFromEmail returns the domain part of an address.
func GetDomainFromEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) == 2 {
		return parts[1]
	}
	return "localhost" // fallback
}

// GetUsernameFromEmail returns the local part of an address.
func GetUsernameFromEmail(email string) string {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) == 2 && parts[0] != "" {
		return parts[0]
	}
	return ""
}

// IsAPIRequest reports whether the request expects a JSON response.
func IsAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}

	if c.Get("HX-Request") != "" {
		return false
	}

	path := c.Path()
	return len(path) >= 4 && path[:4] == "/api"
}
