package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const adminKey contextKey = "admin"

// ErrAdminNotFound is returned when no admin identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrAdminNotFound = errors.New("admin not found in context")

// AdminFromCtx extracts the authenticated back-office username from the
// request context. Returns ErrAdminNotFound for unauthenticated requests.
func AdminFromCtx(ctx context.Context) (string, error) {
	admin, ok := ctx.Value(adminKey).(string)
	if !ok || admin == "" {
		return "", ErrAdminNotFound
	}
	return admin, nil
}

// WithAdmin returns a new context with the given admin username attached.
// Used by authentication middleware after validating the session.
func WithAdmin(ctx context.Context, admin string) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}
