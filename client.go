package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Client is the request pipeline wrapping every outbound call to the
// backing API. It attaches the bearer token from the session, unwraps the
// transport envelope, and classifies failures: a 401 clears the session and
// fires the session-expired callback, anything else goes to the Notifier.
// Errors are always returned to the caller on top of the global handling.
type Client struct {
	baseURL          string
	http             *http.Client
	session          *SessionContext
	notifier         Notifier
	onSessionExpired func()
	logger           Logger
}

// envelope is the transport wrapping the service puts around every JSON
// response body.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewClient(session *SessionContext, cfg Config) *Client {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.GetBaseURL(), "/"),
		http:     &http.Client{Timeout: cfg.GetRequestTimeout()},
		session:  session,
		notifier: noopNotifier{},
		logger:   defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithNotifier sets the channel that surfaces non-auth request failures to
// the user.
func (c *Client) WithNotifier(notifier Notifier) *Client {
	c.notifier = notifier
	return c
}

// WithHTTPClient swaps the underlying transport, e.g. to add tracing.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.http = httpClient
	return c
}

// OnSessionExpired registers the callback invoked when a 401 clears a
// logged-in session. The embedding app wires it to navigation toward the
// login surface; any intended destination is discarded.
func (c *Client) OnSessionExpired(fn func()) *Client {
	c.onSessionExpired = fn
	return c
}

// Get issues a GET request and decodes the envelope payload into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do runs one request through the pipeline. out, when non-nil, receives the
// unwrapped payload; callers never see the envelope.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to serialize request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// the token is captured at dispatch time; a logout racing an in-flight
	// request is resolved by the server, not here
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.notifier.Notify(fallbackErrorMessage)
		return newTransportError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.notifier.Notify(fallbackErrorMessage)
		return newTransportError(err)
	}

	if res.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return ErrAuthRejected
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		message := extractMessage(raw)
		if message == "" {
			c.notifier.Notify(fallbackErrorMessage)
		} else {
			c.notifier.Notify(message)
		}
		return newRequestError(res.StatusCode, message)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode response envelope")
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode response payload")
	}
	return nil
}

// expireSession clears the session on a 401. The callback only fires when
// the session actually transitioned from logged-in to anonymous, so
// concurrent 401s produce a single redirect and a 401 on an unauthenticated
// flow produces none.
func (c *Client) expireSession(ctx context.Context) {
	wasLoggedIn, err := c.session.clear(ctx)
	if err != nil {
		c.logger.Error("unable to clear session after 401: %v", err)
	}
	if wasLoggedIn && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func extractMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Message
}
