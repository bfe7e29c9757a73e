package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// SessionCookieName is the cookie the session token rides in.
const SessionCookieName = "token"

// Route classification for the guard. Static configuration, not state.
var (
	// protectedPrefixes require a session cookie.
	protectedPrefixes = []string{"/dashboard"}
	// authRoutes redirect away when a session cookie is already present.
	authRoutes = []string{"/login", "/register"}
)

// RouteGuard gates the page routes purely from the request path and the
// presence of the session cookie. It deliberately does NOT verify the
// token: a garbage or expired cookie still passes the gate, and the
// handlers that need identity do the authoritative check themselves via
// ResolveSession. The guard is a cheap, synchronous routing decision.
//
// Protected path without a cookie: 302 to /login?redirect=<path>.
// Auth page with a cookie: 302 to /dashboard.
// Everything else passes through unmodified.
func RouteGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				token = c.Value
			}

			path := r.URL.Path

			isProtected := false
			for _, prefix := range protectedPrefixes {
				if strings.HasPrefix(path, prefix) {
					isProtected = true
					break
				}
			}

			isAuthRoute := false
			for _, route := range authRoutes {
				if path == route {
					isAuthRoute = true
					break
				}
			}

			if isProtected && token == "" {
				http.Redirect(w, r, "/login?redirect="+url.QueryEscape(path), http.StatusFound)
				return
			}

			if isAuthRoute && token != "" {
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
