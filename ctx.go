package authclient

import "context"

var profileCtxKey = &contextKey{"profile"}

type contextKey struct {
	name string
}

// WithProfile sets the UserProfile in the given context
func WithProfile(ctx context.Context, profile *UserProfile) context.Context {
	return context.WithValue(ctx, profileCtxKey, profile)
}

// ProfileFromContext finds the profile from the context.
func ProfileFromContext(ctx context.Context) (*UserProfile, bool) {
	raw, ok := ctx.Value(profileCtxKey).(*UserProfile)
	return raw, ok
}
