package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("session: invalid cookie")

// Codec signs session ids into cookie values. The value is an HS256 JWT
// keyed with the application secret; only the session id travels in it.
type Codec struct {
	auth *jwtauth.JWTAuth
}

func NewCodec(secret []byte) *Codec {
	return &Codec{auth: jwtauth.New("HS256", secret, nil)}
}

func (c *Codec) Encode(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": time.Now().Unix(),
	}
	_, tokenString, err := c.auth.Encode(claims)
	return tokenString, err
}

// Decode verifies the signature and returns the session id.
func (c *Codec) Decode(value string) (string, error) {
	token, err := c.auth.Decode(value)
	if err != nil || token == nil {
		return "", ErrInvalidCookie
	}
	v, ok := token.Get("sid")
	if !ok {
		return "", ErrInvalidCookie
	}
	sid, ok := v.(string)
	if !ok || sid == "" {
		return "", ErrInvalidCookie
	}
	return sid, nil
}

// WriteCookie signs sid and sets it as the session cookie on w.
func (c *Codec) WriteCookie(w http.ResponseWriter, r *http.Request, sid string) error {
	value, err := c.Encode(sid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL / time.Second),
	})
	return nil
}
