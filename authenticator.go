package authclient

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// AuthRoutes holds the auth service endpoint paths.
type AuthRoutes struct {
	Login    string
	Register string
	Me       string
}

func defaultAuthRoutes() *AuthRoutes {
	return &AuthRoutes{
		Login:    "/auth/login",
		Register: "/auth/register",
		Me:       "/auth/me",
	}
}

// authResult is the payload the auth service returns from login/register.
type authResult struct {
	User  *UserProfile `json:"user"`
	Token string       `json:"token"`
}

// Auther runs credential flows against the remote auth service and installs
// the resulting session. Credential verification itself stays on the
// server; failures are propagated untouched so callers can render
// field-level feedback.
type Auther struct {
	client  *Client
	session *SessionContext
	routes  *AuthRoutes
	logger  Logger
}

func NewAuthenticator(client *Client, session *SessionContext) *Auther {
	return &Auther{
		client:  client,
		session: session,
		routes:  defaultAuthRoutes(),
		logger:  defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	a.logger = logger
	return a
}

func (a *Auther) WithRoutes(routes *AuthRoutes) *Auther {
	if routes != nil {
		a.routes = routes
	}
	return a
}

// Login verifies credentials against the auth service and, on success,
// atomically installs and persists the returned session.
func (a *Auther) Login(ctx context.Context, creds Credentials) (*UserProfile, error) {
	return a.authenticate(ctx, a.routes.Login, creds)
}

// Register creates an account and installs the returned session, same
// contract as Login.
func (a *Auther) Register(ctx context.Context, creds Credentials) (*UserProfile, error) {
	return a.authenticate(ctx, a.routes.Register, creds)
}

func (a *Auther) authenticate(ctx context.Context, path string, creds Credentials) (*UserProfile, error) {
	if err := creds.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid credentials payload")
	}

	result := new(authResult)
	if err := a.client.Post(ctx, path, creds, result); err != nil {
		a.logger.Error("authentication request failed: %v", err)
		return nil, err
	}

	if result.User == nil || result.Token == "" {
		return nil, goerrors.New("auth service returned an incomplete session", goerrors.CategoryInternal)
	}

	if err := a.session.SetSession(ctx, result.User, result.Token); err != nil {
		return nil, err
	}

	return a.session.User(), nil
}

// RefreshProfile fetches the current profile from the auth service and
// merges it into the session. A no-op on the session when anonymous.
func (a *Auther) RefreshProfile(ctx context.Context) (*UserProfile, error) {
	patch := map[string]any{}
	if err := a.client.Get(ctx, a.routes.Me, &patch); err != nil {
		return nil, err
	}
	if err := a.session.UpdateUser(ctx, patch); err != nil {
		return nil, err
	}
	return a.session.User(), nil
}
