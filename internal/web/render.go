package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

var pageFiles = []string{
	"index.html",
	"about.html",
	"contact.html",
	"admin.html",
	"login.html",
	"signup.html",
	"publish.html",
	"update.html",
	"singlepage.html",
	"error.html",
}

// PageData is passed to every page template.
type PageData struct {
	Title    string
	Username string
	Flashes  []session.Flash

	// Edit form state. LookupTitle is the title from the URL, which stays
	// valid as the form action even when no article matched it.
	Article     *models.Article
	LookupTitle string

	// Next is the local path to return to after logging in.
	Next string

	Status  int
	Message string
}

// Renderer executes the embedded page templates and drains the session's
// pending flash messages into each rendered page.
type Renderer struct {
	pages    map[string]*template.Template
	sessions session.Store
	log      *zap.SugaredLogger
}

func NewRenderer(sessions session.Store, log *zap.SugaredLogger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, sessions: sessions, log: log}, nil
}

// HTML renders page with the given status.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.log.Errorw("unknown template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := session.FromContext(r.Context())
	data.Username = id.Username
	if id.SessionID != "" {
		flashes, err := rd.sessions.PopFlashes(r.Context(), id.SessionID)
		if err != nil {
			rd.log.Warnw("pop flashes failed", "error", err)
		}
		data.Flashes = append(data.Flashes, flashes...)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.log.Errorw("template execution failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Error renders the generic error page for err. The cause is logged, never
// shown to the client.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatusFromError(err)
	if status >= http.StatusInternalServerError {
		rd.log.Errorw("request failed", "path", r.URL.Path, "error", err)
	}
	rd.HTML(w, r, status, "error.html", PageData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: http.StatusText(status),
	})
}

// Flash queues a message for the next rendered page of this session.
func (rd *Renderer) Flash(r *http.Request, category, message string) {
	id := session.FromContext(r.Context())
	if id.SessionID == "" {
		return
	}
	if err := rd.sessions.AddFlash(r.Context(), id.SessionID, session.Flash{Category: category, Message: message}); err != nil {
		rd.log.Warnw("add flash failed", "error", err)
	}
}
