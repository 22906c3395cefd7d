package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/session"
	"github.com/ayush/inkpress/internal/web"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc      *Service
	sessions session.Store
	codec    *session.Codec
	render   *web.Renderer
	log      *zap.SugaredLogger
}

func NewHandler(svc *Service, sessions session.Store, codec *session.Codec, render *web.Renderer, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, sessions: sessions, codec: codec, render: render, log: log}
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "login.html", web.PageData{
		Title: "Log in",
		Next:  localPath(r.URL.Query().Get("next")),
	})
}

// Login authenticates the posted credentials and binds a fresh session id
// to the user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	next := localPath(r.PostFormValue("next"))

	user, err := h.svc.Login(r.Context(), username, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		h.log.Infow("login failed", "username", username)
		h.render.Flash(r, session.FlashDanger, "Invalid username or password")
		h.render.HTML(w, r, http.StatusOK, "login.html", web.PageData{Title: "Log in", Next: next})
		return
	}
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	r, err = session.Renew(w, r, h.sessions, h.codec, user.Username)
	if err != nil {
		h.render.Error(w, r, common.StorageError("renew session", err))
		return
	}
	if err := h.sessions.SetUsername(r.Context(), session.FromContext(r.Context()).SessionID, user.Username); err != nil {
		h.render.Error(w, r, common.StorageError("bind session", err))
		return
	}
	h.render.Flash(r, session.FlashSuccess, "Login successful!")
	if next == "" {
		next = "/adminpage"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// localPath returns p when it is a path on this site and "" otherwise.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return p
}

func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "signup.html", web.PageData{Title: "Sign up"})
}

// Signup creates a user from the posted form.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	req := models.SignupRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Avatar:   r.PostFormValue("avatar"),
	}

	_, err := h.svc.Signup(r.Context(), req)
	if errors.Is(err, common.ErrValidation) {
		h.render.Flash(r, session.FlashDanger, "Please fill in all fields.")
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.log.Infow("user signed up", "username", req.Username)
	h.render.Flash(r, session.FlashSuccess, "Signup successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout unbinds the user and moves the visitor to a fresh anonymous
// session. It succeeds whether or not anyone was logged in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	renewed, err := session.Renew(w, r, h.sessions, h.codec, "")
	if err != nil {
		h.log.Warnw("renew session failed", "error", err)
		if id := session.FromContext(r.Context()); id.SessionID != "" {
			h.sessions.ClearUsername(r.Context(), id.SessionID)
		}
	} else {
		r = renewed
	}
	h.render.Flash(r, session.FlashInfo, "You have logged out.")
	http.Redirect(w, r, "/", http.StatusFound)
}
