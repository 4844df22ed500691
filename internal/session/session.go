// Package session carries the authenticated identity through a
// context.Context. Authentication itself happens outside this module;
// callers attach the identity they obtained elsewhere.
package session

import "context"

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFrom extracts the authenticated user id, if any. An absent or
// empty identity reports false; operations treat that as a silent skip,
// not an error.
func UserFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
