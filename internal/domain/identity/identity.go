// Package identity carries the signed-in identity through context. There is
// exactly one source of truth for "who is signed in" (the session usecase);
// the delivery layer stamps the verified identity onto the request context and
// everything below reads it from there.
package identity

import "context"

// Identity describes an authenticated user as reported by the identity provider.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached to the context, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	if !ok || id == nil {
		return nil, false
	}

	return id, true
}
