package authclient

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeAuthRejected marks a 401 from the service
	TextCodeAuthRejected = "AUTH_REJECTED"
	// TextCodeRequestFailed marks any other non-2xx response
	TextCodeRequestFailed = "REQUEST_FAILED"
	// TextCodeTransportFailure marks a network-level failure with no response
	TextCodeTransportFailure = "TRANSPORT_FAILURE"
)

// ErrAuthRejected is returned when the service answers 401: the credential
// is invalid or expired. The pipeline handles it globally (session cleared,
// expiry callback) and still re-surfaces it so call sites can run their own
// cleanup.
var ErrAuthRejected = goerrors.New("authentication rejected", goerrors.CategoryAuth).
	WithTextCode(TextCodeAuthRejected).
	WithCode(goerrors.CodeUnauthorized)

// fallbackErrorMessage is shown when a failing response carries no message.
const fallbackErrorMessage = "network request failed"

func newRequestError(status int, message string) *goerrors.Error {
	if message == "" {
		message = fallbackErrorMessage
	}
	return goerrors.New(
		fmt.Sprintf("request failed with status %d: %s", status, message),
		goerrors.CategoryOperation,
	).WithTextCode(TextCodeRequestFailed)
}

func newTransportError(err error) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "transport failure").
		WithTextCode(TextCodeTransportFailure)
}

// IsAuthError checks for the 401 classification.
func IsAuthError(err error) bool {
	return hasTextCode(err, TextCodeAuthRejected)
}

// IsRequestError checks for a non-401 response failure.
func IsRequestError(err error) bool {
	return hasTextCode(err, TextCodeRequestFailed)
}

// IsTransportError checks for a network-level failure with no response.
func IsTransportError(err error) bool {
	return hasTextCode(err, TextCodeTransportFailure)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
