package auth

import "context"

// Identity is the authenticated identity attached to a request context by
// the authentication middleware. It lives for one request.
type Identity struct {
	Username string
}

type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// FromContext retrieves the Identity from the context, returning nil if no
// authenticated identity is present.
func FromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
