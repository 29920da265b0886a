package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdminToken guards operator endpoints with a static token from
// config. With no token configured every request is rejected.
func RequireAdminToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get("X-Admin-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

// DevAuth stands in for Firebase when no project is configured: it trusts
// the X-Debug-UID header. Local development only.
func DevAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if uid := c.Request().Header.Get("X-Debug-UID"); uid != "" {
			c.Set("uid", uid)
		}
		return next(c)
	}
}
