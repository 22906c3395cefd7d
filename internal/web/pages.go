package web

import "net/http"

// Pages serves the static informational pages and the admin dashboard.
type Pages struct {
	render *Renderer
}

func NewPages(render *Renderer) *Pages {
	return &Pages{render: render}
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	p.render.HTML(w, r, http.StatusOK, "index.html", PageData{Title: "Home"})
}

func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	p.render.HTML(w, r, http.StatusOK, "about.html", PageData{Title: "About"})
}

func (p *Pages) Contact(w http.ResponseWriter, r *http.Request) {
	p.render.HTML(w, r, http.StatusOK, "contact.html", PageData{Title: "Contact"})
}

func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	p.render.HTML(w, r, http.StatusOK, "admin.html", PageData{Title: "Admin"})
}

// NotFound renders the error page for unknown routes.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render.HTML(w, r, http.StatusNotFound, "error.html", PageData{
		Title:   "Not Found",
		Status:  http.StatusNotFound,
		Message: http.StatusText(http.StatusNotFound),
	})
}
