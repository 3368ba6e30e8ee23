package authclient

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Logger is the minimal logging surface this package needs
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Notifier is the user-visible notification channel used for request
// failures that are not authentication failures. Implementations typically
// bridge to a toast/flash surface in the embedding app.
type Notifier interface {
	Notify(message string)
}

// Credentials is the payload sent to the login and register endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate ensures both fields are present before we hit the network.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type noopNotifier struct{}

func (n noopNotifier) Notify(string) {}

// LoggerNotifier routes notifications through a Logger. Useful default for
// headless embeddings (CLIs, workers) that have no toast surface.
type LoggerNotifier struct {
	Logger Logger
}

func (n LoggerNotifier) Notify(message string) {
	logger := n.Logger
	if logger == nil {
		logger = defLogger{}
	}
	logger.Error("request failed: %s", message)
}
