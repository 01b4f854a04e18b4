package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireKind lets through only tokens issued for one of kinds ("user",
// "organization"). It must run after JWTAuth.
func RequireKind(kinds ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !allowed[id.Kind] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
