package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketr/internal/utils"
)

const identityKey = "identity"

// IdentityFrom returns the identity JWTAuth stored, if any.
func IdentityFrom(c echo.Context) (utils.Identity, bool) {
	id, ok := c.Get(identityKey).(utils.Identity)
	return id, ok
}

// currentUserID is used for rate-limit keys; anonymous callers share "anon".
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "anon"
}
