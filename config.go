package authclient

import "time"

// Config holds the knobs shared by the session, pipeline, and guard.
type Config interface {
	GetBaseURL() string
	GetLoginRoute() string
	GetDefaultRoute() string
	GetRedirectParam() string
	GetTokenKey() string
	GetUserKey() string
	GetRequestTimeout() time.Duration
}

// SimpleConfig is a plain-struct Config. Zero fields fall back to the
// package defaults so `&SimpleConfig{BaseURL: "https://api.example.com"}`
// is a complete configuration.
type SimpleConfig struct {
	BaseURL        string
	LoginRoute     string
	DefaultRoute   string
	RedirectParam  string
	TokenKey       string
	UserKey        string
	RequestTimeout time.Duration
}

func (c SimpleConfig) GetBaseURL() string {
	return orDefault(c.BaseURL, "/api")
}

func (c SimpleConfig) GetLoginRoute() string {
	return orDefault(c.LoginRoute, "/login")
}

func (c SimpleConfig) GetDefaultRoute() string {
	return orDefault(c.DefaultRoute, "/")
}

func (c SimpleConfig) GetRedirectParam() string {
	return orDefault(c.RedirectParam, "redirect")
}

func (c SimpleConfig) GetTokenKey() string {
	return orDefault(c.TokenKey, "token")
}

func (c SimpleConfig) GetUserKey() string {
	return orDefault(c.UserKey, "user")
}

func (c SimpleConfig) GetRequestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return c.RequestTimeout
}

func defaultConfig() Config {
	return SimpleConfig{}
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
