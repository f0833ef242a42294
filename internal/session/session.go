// Package session carries the verified caller of a request on its context.
package session

import (
	"context"

	"github.com/google/uuid"
)

// Session is the identity resolved from a valid access token
type Session struct {
	UserID uuid.UUID
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session on ctx. ok is false for anonymous requests.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == uuid.Nil {
		return Session{}, false
	}
	return s, true
}
