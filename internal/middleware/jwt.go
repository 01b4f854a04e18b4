package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketr/internal/utils"
)

// JWTAuth validates a Bearer access token and stores the caller's identity in
// the context (see IdentityFrom). Requests without a valid token get 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, ok := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, id)
			c.Set("user_id", strconv.FormatUint(id.ID, 10))
			c.Set("kind", id.Kind)
			return next(c)
		}
	}
}
