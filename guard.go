package authclient

import "net/url"

// SessionFlags is a point-in-time snapshot of the derived session state.
type SessionFlags struct {
	LoggedIn bool
	Admin    bool
}

// RouteRequirements declares what a target route demands from the caller.
// Routes with no requirements are open to everyone.
type RouteRequirements struct {
	Name          string
	RequiresAuth  bool
	RequiresAdmin bool
}

// Decision is the outcome of evaluating a navigation: either allow it
// unchanged, or redirect to Target (with an optional query).
type Decision struct {
	Allow  bool
	Target string
	Query  url.Values
}

// Allowed builds a pass-through decision.
func Allowed() Decision {
	return Decision{Allow: true}
}

// RedirectTo builds a redirect decision.
func RedirectTo(target string, query url.Values) Decision {
	return Decision{Target: target, Query: query}
}

// Location renders the redirect target including its query string. Empty
// for an Allow decision.
func (d Decision) Location() string {
	if d.Allow {
		return ""
	}
	if len(d.Query) == 0 {
		return d.Target
	}
	return d.Target + "?" + d.Query.Encode()
}

// Guard gates navigation to protected surfaces. It reads the session's
// derived flags and a route's declared requirements and produces a
// Decision. It never mutates the session and performs no I/O, so it is safe
// to run before every navigation.
type Guard struct {
	session    *SessionContext
	config     Config
	guestRoute map[string]bool
}

func NewGuard(session *SessionContext, cfg Config) *Guard {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Guard{
		session: session,
		config:  cfg,
		guestRoute: map[string]bool{
			"login":    true,
			"register": true,
		},
	}
}

// WithGuestOnlyRoutes replaces the set of route names reserved for
// unauthenticated callers.
func (g *Guard) WithGuestOnlyRoutes(names ...string) *Guard {
	g.guestRoute = make(map[string]bool, len(names))
	for _, name := range names {
		g.guestRoute[name] = true
	}
	return g
}

// Evaluate decides whether navigation to path may proceed. First matching
// rule wins:
//
//  1. auth required, caller anonymous: redirect to login, carrying path as
//     the return destination
//  2. admin required, caller not admin: redirect to the default surface
//  3. guest-only route, caller logged in: redirect to the default surface
//  4. otherwise: allow
//
// Rule 2 redirects silently: keeping non-admins off admin surfaces is
// routing policy, not a reported failure.
func (g *Guard) Evaluate(path string, route RouteRequirements) Decision {
	flags := g.session.Flags()

	if route.RequiresAuth && !flags.LoggedIn {
		query := url.Values{}
		query.Set(g.config.GetRedirectParam(), path)
		return RedirectTo(g.config.GetLoginRoute(), query)
	}

	if route.RequiresAdmin && !flags.Admin {
		return RedirectTo(g.config.GetDefaultRoute(), nil)
	}

	if g.guestRoute[route.Name] && flags.LoggedIn {
		return RedirectTo(g.config.GetDefaultRoute(), nil)
	}

	return Allowed()
}
