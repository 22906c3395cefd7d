package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/session"
)

// LoadSession resolves the signed session cookie and injects the session
// identity into the request context. Visitors without a valid cookie get a
// fresh session id.
func LoadSession(codec *session.Codec, store session.Store, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if cookie, err := r.Cookie(session.CookieName); err == nil {
				sid, _ = codec.Decode(cookie.Value)
			}

			if sid == "" {
				sid = uuid.NewString()
				if err := codec.WriteCookie(w, r, sid); err != nil {
					log.Errorw("sign session cookie", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			username, err := store.Username(r.Context(), sid)
			if err != nil {
				log.Warnw("session lookup failed", "error", err)
			}

			ctx := session.WithIdentity(r.Context(), session.Identity{SessionID: sid, Username: username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
