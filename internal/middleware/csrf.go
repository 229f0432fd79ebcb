package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
)

const (
	CSRFCookie = "sl_csrf"
	CSRFHeader = "X-SL-CSRF"
)

// Values of server.csrf_mode.
const (
	CSRFModeToken  = "token"
	CSRFModeOrigin = "origin"
	CSRFModeOff    = "off"
)

// CSRFRequired guards state-changing requests. A foreign Origin is always
// refused. In token mode a request that authenticates through the access
// cookie must also echo the sl_csrf cookie in the X-SL-CSRF header.
func CSRFRequired(mode string, allowedOrigins []string) fiber.Handler {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == CSRFModeOff {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	checkToken := mode != CSRFModeOrigin

	return func(c *fiber.Ctx) error {
		if safeMethod(c.Method()) {
			return c.Next()
		}

		origin := strings.TrimSpace(c.Get(fiber.HeaderOrigin))
		if origin != "" && len(allowedOrigins) > 0 && !originAllowed(origin, allowedOrigins) {
			return httpx.Forbidden(c, "forbidden_origin", "Origin not allowed")
		}

		if !checkToken || !cookieSession(c) {
			return c.Next()
		}

		cookie, header := c.Cookies(CSRFCookie), c.Get(CSRFHeader)
		if cookie == "" || header == "" {
			return httpx.Forbidden(c, "csrf_required", "Missing CSRF token")
		}
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			return httpx.Forbidden(c, "csrf_invalid", "Invalid CSRF token")
		}
		return c.Next()
	}
}

func safeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

// cookieSession reports whether the browser sends credentials on its own.
// Bearer tokens have to be attached by script, so they cannot be forged cross-site.
func cookieSession(c *fiber.Ctx) bool {
	return c.Get(fiber.HeaderAuthorization) == "" && c.Cookies(AccessCookie) != ""
}
