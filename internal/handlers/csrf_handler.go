package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/middleware"
)

const csrfTokenTTL = 12 * time.Hour

// CSRF issues a double-submit token: the same value goes into a readable
// cookie and the response body, and must come back in the X-SL-CSRF header.
func CSRF(c *fiber.Ctx) error {
	token, err := newCSRFToken()
	if err != nil {
		return httpx.Internal(c, "csrf_failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CSRFCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(csrfTokenTTL),
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return httpx.OK(c, fiber.Map{"csrf_token": token})
}

func newCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
