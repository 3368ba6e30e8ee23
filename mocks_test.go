package authclient_test

import (
	"context"
	"sync"
	"testing"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage implements authclient.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

func newTestSession(t *testing.T) (*authclient.SessionContext, *authclient.MemoryStorage) {
	t.Helper()
	storage := authclient.NewMemoryStorage()
	session, err := authclient.NewSessionContext(storage, nil)
	require.NoError(t, err)
	return session, storage
}

func testProfile(role authclient.UserRole) *authclient.UserProfile {
	return &authclient.UserProfile{
		ID:       1,
		Username: "alice",
		Role:     role,
	}
}
