package middleware

import "net/url"

// Decision is the outcome of the route guard for one navigation.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

// Decide is the whole of the authorization gate: visitors without a session
// go to the login screen, signed-in non-admins are bounced off admin-only
// screens, everyone else passes.
func Decide(loggedIn bool, isAdmin bool, adminOnly bool) Decision {
	if !loggedIn {
		return RedirectLogin
	}
	if adminOnly && !isAdmin {
		return RedirectHome
	}
	return Allow
}

// LoginRedirect carries the originally requested location so a post-login
// return is possible. Nothing consumes it yet.
func LoginRedirect(from string) string {
	if from == "" {
		return "/login"
	}
	return "/login?from=" + url.QueryEscape(from)
}
