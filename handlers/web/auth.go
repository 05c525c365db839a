// handlers/web/auth.go
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler renders the login page; the form itself posts to /api/login.
type AuthHandler struct {
	store *session.Store
}

func NewAuthHandler(store *session.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}
