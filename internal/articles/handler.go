package articles

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/session"
	"github.com/ayush/inkpress/internal/upload"
	"github.com/ayush/inkpress/internal/web"
)

const maxUploadMemory = 32 << 20

// Handler holds article HTTP handlers.
type Handler struct {
	svc    *Service
	render *web.Renderer
	log    *zap.SugaredLogger
}

func NewHandler(svc *Service, render *web.Renderer, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, render: render, log: log}
}

func (h *Handler) PublishForm(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "publish.html", web.PageData{Title: "Publish"})
}

// Publish handles the multipart publish form with an optional thumbnail.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.render.Flash(r, session.FlashDanger, "Could not read the submitted form.")
		http.Redirect(w, r, "/publish", http.StatusFound)
		return
	}

	req := models.PublishRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	var thumb *upload.File
	file, header, err := r.FormFile("thumbnail")
	if err == nil {
		defer file.Close()
		thumb = &upload.File{Name: header.Filename, Size: header.Size, Body: file}
		if !upload.Allowed(header.Filename) {
			h.log.Infow("thumbnail skipped", "filename", header.Filename)
		}
	}

	a, err := h.svc.Publish(r.Context(), req, thumb)
	if errors.Is(err, common.ErrValidation) {
		h.render.Flash(r, session.FlashDanger, "Title is required.")
		http.Redirect(w, r, "/publish", http.StatusFound)
		return
	}
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.log.Infow("article published", "title", a.Title, "thumbnail", a.Thumbnail != nil)
	h.render.Flash(r, session.FlashSuccess, "Article published successfully!")
	http.Redirect(w, r, "/publish", http.StatusFound)
}

// List returns every article as {"articles": [...]}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Errorw("list articles failed", "error", err)
		render.Status(r, common.HTTPStatusFromError(err))
		render.JSON(w, r, render.M{"error": "internal error"})
		return
	}
	if list == nil {
		list = []models.Article{}
	}
	render.JSON(w, r, render.M{"articles": list})
}

// Single renders one article, chosen by the title query parameter. Without
// a title the page renders empty.
func (h *Handler) Single(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		h.render.HTML(w, r, http.StatusOK, "singlepage.html", web.PageData{Title: "Article"})
		return
	}
	a, err := h.svc.Get(r.Context(), title)
	if errors.Is(err, common.ErrNotFound) {
		h.render.HTML(w, r, http.StatusNotFound, "singlepage.html", web.PageData{
			Title:   "Article",
			Message: "Article not found.",
		})
		return
	}
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.HTML(w, r, http.StatusOK, "singlepage.html", web.PageData{Title: a.Title, Article: a})
}

// EditForm renders the edit form for the article in the URL. An unknown
// title renders an empty form.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)
	a, err := h.svc.Get(r.Context(), title)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		h.render.Error(w, r, err)
		return
	}
	if a == nil {
		h.log.Warnw("edit of unknown article", "title", title)
	}
	h.render.HTML(w, r, http.StatusOK, "update.html", web.PageData{
		Title:       "Edit article",
		Article:     a,
		LookupTitle: title,
	})
}

// Update applies the edit form to the article in the URL.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	title := titleParam(r)
	req := models.PublishRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
	}

	err := h.svc.Update(r.Context(), title, req)
	switch {
	case errors.Is(err, common.ErrValidation):
		h.render.Flash(r, session.FlashDanger, "Title is required.")
		http.Redirect(w, r, "/update_article/"+url.PathEscape(title), http.StatusFound)
		return
	case errors.Is(err, common.ErrNotFound):
		h.render.Flash(r, session.FlashDanger, "Article not found.")
		h.render.HTML(w, r, http.StatusNotFound, "update.html", web.PageData{
			Title:       "Edit article",
			LookupTitle: title,
		})
		return
	case err != nil:
		h.render.Error(w, r, err)
		return
	}

	h.log.Infow("article updated", "title", title, "new_title", req.Title)
	h.render.Flash(r, session.FlashSuccess, "Article updated successfully!")
	http.Redirect(w, r, "/adminpage", http.StatusFound)
}

// titleParam returns the decoded {title} segment. chi matches against the
// raw path when one is present, leaving params escaped.
func titleParam(r *http.Request) string {
	raw := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return raw
	}
	if t, err := url.PathUnescape(raw); err == nil {
		return t
	}
	return raw
}
