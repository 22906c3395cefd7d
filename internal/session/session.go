// Package session ties requests to server-side state: the logged-in
// username and pending flash messages.
package session

import (
	"context"
	"time"
)

const (
	TTL        = 24 * time.Hour
	CookieName = "session"
)

// Flash categories used by the page templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Store persists per-session state keyed by session id.
type Store interface {
	Username(ctx context.Context, sid string) (string, error)
	SetUsername(ctx context.Context, sid, username string) error
	ClearUsername(ctx context.Context, sid string) error
	AddFlash(ctx context.Context, sid string, f Flash) error
	PopFlashes(ctx context.Context, sid string) ([]Flash, error)
}

// Identity is the request-scoped view of the session.
type Identity struct {
	SessionID string
	Username  string
}

func (i Identity) Authenticated() bool {
	return i.Username != ""
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity placed by the session middleware, or
// the zero Identity.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
