package middleware // middleware provides shared request processing for handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigstage/music-event-backend/internal/utils"
)

// Context keys under which the auth gate stores the caller's identity.
// Handlers read these with c.Get; they are set once per request and
// never mutated afterwards.
const (
	CtxUserEmail = "user_email"
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
)

// AuthGate returns an Echo middleware that resolves a caller's identity
// from a Bearer token. It never rejects a request: a missing header,
// undecodable token or failed validation all leave the request
// unauthenticated and pass it on. Rejection is the job of route-level
// policy such as RequireRole.
func AuthGate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				// No token: proceed unauthenticated.
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			email, err := utils.ExtractEmail(secret, raw)
			if err != nil {
				clearIdentity(c)
				return next(c)
			}
			uid, err := utils.ExtractUserID(secret, raw)
			if err != nil {
				clearIdentity(c)
				return next(c)
			}
			role, err := utils.ExtractRole(secret, raw)
			if err != nil {
				clearIdentity(c)
				return next(c)
			}

			if c.Get(CtxUserEmail) == nil && utils.ValidateToken(secret, raw, email) {
				c.Set(CtxUserEmail, email)
				c.Set(CtxUserID, uid)
				c.Set(CtxUserRole, role)
			}
			return next(c)
		}
	}
}

func clearIdentity(c echo.Context) {
	c.Set(CtxUserEmail, nil)
	c.Set(CtxUserID, nil)
	c.Set(CtxUserRole, nil)
}

// CurrentUserID returns the authenticated caller's id, or ok=false when
// the request carries no valid identity.
func CurrentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok
}

// CurrentUserRole returns the authenticated caller's role, or ok=false
// when the request carries no valid identity.
func CurrentUserRole(c echo.Context) (string, bool) {
	role, ok := c.Get(CtxUserRole).(string)
	return role, ok
}
