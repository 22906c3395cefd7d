package middleware

import (
	"net/http"
	"net/url"

	"github.com/ayush/inkpress/internal/session"
)

// RequireAuth redirects anonymous visitors to the login page. It must run
// after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
