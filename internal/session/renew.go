package session

import (
	"net/http"

	"github.com/google/uuid"
)

// Renew replaces the request's session id with a fresh one. Pending
// flashes move to the new id and the old id is unbound, so a copy of the
// previous cookie carries no identity. The returned request carries the new
// Identity with the given username; the caller binds the username in the
// store.
func Renew(w http.ResponseWriter, r *http.Request, store Store, codec *Codec, username string) (*http.Request, error) {
	ctx := r.Context()
	old := FromContext(ctx).SessionID
	sid := uuid.NewString()

	if old != "" {
		flashes, err := store.PopFlashes(ctx, old)
		if err != nil {
			return r, err
		}
		if err := store.ClearUsername(ctx, old); err != nil {
			return r, err
		}
		for _, f := range flashes {
			if err := store.AddFlash(ctx, sid, f); err != nil {
				return r, err
			}
		}
	}
	if err := codec.WriteCookie(w, r, sid); err != nil {
		return r, err
	}
	return r.WithContext(WithIdentity(ctx, Identity{SessionID: sid, Username: username})), nil
}
