package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuther(t *testing.T, handler http.Handler) (*authclient.Auther, *authclient.SessionContext, *authclient.MemoryStorage) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	storage := authclient.NewMemoryStorage()
	session, err := authclient.NewSessionContext(storage, nil)
	require.NoError(t, err)

	client := authclient.NewClient(session, authclient.SimpleConfig{BaseURL: server.URL})
	return authclient.NewAuthenticator(client, session), session, storage
}

func authServiceHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds authclient.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Password != "x" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid username or password"}`))
			return
		}

		w.Write([]byte(`{"data":{"user":{"id":1,"username":"alice","role":"user"},"token":"abc"}}`))
	})
}

func TestLoginInstallsSession(t *testing.T) {
	ctx := context.Background()
	auther, session, storage := newTestAuther(t, authServiceHandler(t))

	user, err := auther.Login(ctx, authclient.Credentials{Username: "alice", Password: "x"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, authclient.RoleUser, user.Role)

	assert.True(t, session.IsLoggedIn())
	assert.False(t, session.IsAdmin())
	assert.Equal(t, "abc", session.Token())

	token, err := storage.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestLoginFailurePropagatesAndLeavesSessionAnonymous(t *testing.T) {
	ctx := context.Background()
	auther, session, storage := newTestAuther(t, authServiceHandler(t))

	user, err := auther.Login(ctx, authclient.Credentials{Username: "alice", Password: "nope"})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, authclient.IsRequestError(err))
	assert.Contains(t, err.Error(), "invalid username or password")

	assert.False(t, session.IsLoggedIn())
	assert.Equal(t, 0, storage.Len())
}

func TestLoginValidatesCredentialsBeforeDispatch(t *testing.T) {
	ctx := context.Background()
	called := false

	auther, _, _ := newTestAuther(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := auther.Login(ctx, authclient.Credentials{Username: "alice"})
	require.Error(t, err)
	assert.False(t, called)

	_, err = auther.Login(ctx, authclient.Credentials{Password: "x"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestRegisterInstallsSession(t *testing.T) {
	ctx := context.Background()

	auther, session, _ := newTestAuther(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.Write([]byte(`{"data":{"user":{"id":2,"username":"bob","role":"user"},"token":"def"}}`))
	}))

	user, err := auther.Register(ctx, authclient.Credentials{Username: "bob", Password: "y"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.True(t, session.IsLoggedIn())
	assert.Equal(t, "def", session.Token())
}

func TestAuthenticateRejectsIncompletePayloads(t *testing.T) {
	ctx := context.Background()

	auther, session, _ := newTestAuther(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":3,"username":"carol","role":"user"}}}`))
	}))

	_, err := auther.Login(ctx, authclient.Credentials{Username: "carol", Password: "z"})
	require.Error(t, err)
	assert.False(t, session.IsLoggedIn())
}

func TestRefreshProfileMergesServerState(t *testing.T) {
	ctx := context.Background()

	auther, session, _ := newTestAuther(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"data":{"user":{"id":1,"username":"alice","role":"user"},"token":"abc"}}`))
		case "/auth/me":
			w.Write([]byte(`{"data":{"id":1,"username":"alice","role":"admin","avatar":"a.png"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	_, err := auther.Login(ctx, authclient.Credentials{Username: "alice", Password: "x"})
	require.NoError(t, err)

	user, err := auther.RefreshProfile(ctx)
	require.NoError(t, err)

	assert.Equal(t, authclient.RoleAdmin, user.Role)
	assert.Equal(t, "a.png", user.Extra["avatar"])
	assert.True(t, session.IsAdmin())
}

func TestCustomAuthRoutes(t *testing.T) {
	ctx := context.Background()
	var gotPath string

	auther, _, _ := newTestAuther(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"user":{"id":1,"username":"alice","role":"user"},"token":"abc"}}`))
	}))
	auther.WithRoutes(&authclient.AuthRoutes{
		Login:    "/v2/session",
		Register: "/v2/accounts",
		Me:       "/v2/me",
	})

	_, err := auther.Login(ctx, authclient.Credentials{Username: "alice", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/v2/session", gotPath)
}
