package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// SessionContext is the single source of truth for the caller's
// authentication state: the current user profile and bearer token, plus the
// flags derived from them. There is one instance per process, owned by the
// application root and handed by reference to the pipeline and the guard.
//
// Every mutation writes through Storage before updating memory, ordered so
// a concurrent reader of the same storage never observes a token without a
// user: install writes user then token, clear deletes token then user.
type SessionContext struct {
	mu      sync.RWMutex
	user    *UserProfile
	token   string
	storage Storage
	config  Config
	logger  Logger
}

// NewSessionContext builds a session bound to storage and primes it from
// whatever state a previous process persisted. Missing entries mean an
// anonymous session; a half-written pair (one entry without the other) is
// treated as anonymous too.
func NewSessionContext(storage Storage, cfg Config) (*SessionContext, error) {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if cfg == nil {
		cfg = defaultConfig()
	}

	s := &SessionContext{
		storage: storage,
		config:  cfg,
		logger:  defLogger{},
	}

	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SessionContext) WithLogger(logger Logger) *SessionContext {
	s.logger = logger
	return s
}

// Reload re-reads the persisted session, replacing the in-memory state.
// Embedding apps can call it when another process instance may have written
// newer state (e.g. on a storage change signal).
func (s *SessionContext) Reload(ctx context.Context) error {
	token, err := s.storage.Get(ctx, s.config.GetTokenKey())
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read persisted token")
	}

	rawUser, err := s.storage.Get(ctx, s.config.GetUserKey())
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read persisted user")
	}

	var user *UserProfile
	if rawUser != "" {
		user = new(UserProfile)
		if err := json.Unmarshal([]byte(rawUser), user); err != nil {
			s.logger.Error("discarding unreadable persisted user: %v", err)
			user = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || user == nil {
		s.user = nil
		s.token = ""
		return nil
	}

	s.user = user
	s.token = token
	return nil
}

// SetSession atomically installs the user/token pair and persists both.
// Used by login and register, and by any external flow that already holds
// credentials.
func (s *SessionContext) SetSession(ctx context.Context, user *UserProfile, token string) error {
	if user == nil || token == "" {
		return goerrors.New("a session requires both a user and a token", goerrors.CategoryBadInput)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to serialize user profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, s.config.GetUserKey(), string(payload)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist user profile")
	}
	if err := s.storage.Set(ctx, s.config.GetTokenKey(), token); err != nil {
		// roll the user entry back so storage never holds a lone half
		if delErr := s.storage.Delete(ctx, s.config.GetUserKey()); delErr != nil {
			s.logger.Error("unable to roll back user entry: %v", delErr)
		}
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist token")
	}

	s.user = user.Clone()
	s.token = token
	return nil
}

// UpdateUser shallow-merges a partial profile update into the current user
// and re-persists it. A no-op when the session is anonymous; callers only
// invoke it while logged in by contract.
func (s *SessionContext) UpdateUser(ctx context.Context, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}

	next := s.user.Clone()
	next.Merge(patch)

	payload, err := json.Marshal(next)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to serialize user profile")
	}
	if err := s.storage.Set(ctx, s.config.GetUserKey(), string(payload)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist user profile")
	}

	s.user = next
	return nil
}

// Logout clears the session and removes the persisted entries. Idempotent.
func (s *SessionContext) Logout(ctx context.Context) error {
	_, err := s.clear(ctx)
	return err
}

// clear wipes the session and reports whether it was logged in beforehand.
// The transition flag is what lets the pipeline fire its expiry callback
// exactly once when several requests hit a 401 near-simultaneously.
func (s *SessionContext) clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasLoggedIn := s.token != "" && s.user != nil

	// token first: a concurrent storage reader must not see a token
	// without its user
	if err := s.storage.Delete(ctx, s.config.GetTokenKey()); err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to remove persisted token")
	}
	if err := s.storage.Delete(ctx, s.config.GetUserKey()); err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to remove persisted user")
	}

	s.user = nil
	s.token = ""
	return wasLoggedIn, nil
}

// IsLoggedIn reports whether both a token and a user are present. Derived
// on every read; never cached.
func (s *SessionContext) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the session is logged in with the admin role.
func (s *SessionContext) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil && s.user.Role == RoleAdmin
}

// Token returns the current bearer token, empty when anonymous.
func (s *SessionContext) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, nil when anonymous.
func (s *SessionContext) User() *UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Flags returns both derived flags from a single consistent snapshot.
func (s *SessionContext) Flags() SessionFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loggedIn := s.token != "" && s.user != nil
	return SessionFlags{
		LoggedIn: loggedIn,
		Admin:    loggedIn && s.user.Role == RoleAdmin,
	}
}
