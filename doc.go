// Package authclient manages client-side authentication state for apps that
// talk to a token-issuing HTTP API.
//
// Session state:
//   - SessionContext is the single source of truth for the current user and
//     bearer token. IsLoggedIn and IsAdmin are derived on every read, never
//     stored, so they cannot drift from the underlying pair. Every mutation
//     writes through a pluggable key-value Storage before returning, which is
//     how a restarted process reconstructs the same session without a network
//     call.
//
// Request pipeline:
//   - Client wraps every outbound API call: it attaches the bearer token when
//     one is present, unwraps the transport envelope so callers only see
//     payloads, and classifies failures. A 401 clears the session and fires
//     the session-expired callback exactly once; other failures go to the
//     Notifier with a best-effort message. Errors are always re-surfaced to
//     the caller so local error handling still runs.
//
// Navigation:
//   - Guard is a pure pre-navigation decision over the derived session flags
//     and a route's declared requirements. It redirects anonymous callers to
//     the login surface (carrying the intended path), bounces non-admins off
//     admin routes, and keeps logged-in users away from guest-only surfaces.
//     Wiring the resulting Decision into actual navigation is the embedding
//     app's job.
package authclient
