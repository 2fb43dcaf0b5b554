// Package routeguard decides, before any page or API handler runs,
// whether a request may proceed or must be redirected based on the
// requested path and the presence of a session token.
package routeguard

// Decision is the outcome of evaluating a request against the route
// classification.
type Decision int

const (
	// Allow serves the requested path unchanged.
	Allow Decision = iota
	// RedirectToLogin sends an anonymous caller of a protected route to
	// the login page.
	RedirectToLogin
	// RedirectToDashboard sends an already-authenticated caller of an
	// auth route to the dashboard.
	RedirectToDashboard
)

// String returns a short name for logging.
func (d Decision) String() string {
	switch d {
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDashboard:
		return "redirect_to_dashboard"
	default:
		return "allow"
	}
}

// Target paths for redirect decisions.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// authRoutes are login/register variants that should bounce callers who
// already hold a token.
var authRoutes = map[string]struct{}{
	"/login":           {},
	"/register":        {},
	"/register/vendor": {},
}

// protectedRoutes require a token to be served. Matching is exact: only
// the dashboard root is listed, and nested dashboard paths are covered
// by per-handler session checks instead of this table.
var protectedRoutes = map[string]struct{}{
	"/dashboard": {},
}

// Evaluate is a pure, total function of the requested path and a shallow
// token-presence check. Rules apply in order: auth route with a token
// redirects to the dashboard, protected route without a token redirects
// to login, everything else is allowed.
func Evaluate(path string, hasToken bool) Decision {
	if _, ok := authRoutes[path]; ok && hasToken {
		return RedirectToDashboard
	}
	if _, ok := protectedRoutes[path]; ok && !hasToken {
		return RedirectToLogin
	}
	return Allow
}
