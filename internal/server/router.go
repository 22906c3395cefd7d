package server

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/articles"
	"github.com/ayush/inkpress/internal/auth"
	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/middleware"
	"github.com/ayush/inkpress/internal/session"
	"github.com/ayush/inkpress/internal/upload"
	"github.com/ayush/inkpress/internal/web"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log      *zap.SugaredLogger
	Codec    *session.Codec
	Sessions session.Store
	Users    auth.UserStore
	Articles articles.Store
	Blobs    upload.BlobStore
	// Thumbnails, when set, serves /static/uploads/ from the blob backend
	// instead of the static directory.
	Thumbnails upload.BlobSource

	StaticDir      string
	AllowedOrigins []string
	RequireAuth    bool
}

// NewRouter wires handlers and middleware into a chi router.
func NewRouter(d Deps) (*chi.Mux, error) {
	renderer, err := web.NewRenderer(d.Sessions, d.Log)
	if err != nil {
		return nil, err
	}

	pages := web.NewPages(renderer)
	authHandler := auth.NewHandler(auth.NewService(d.Users), d.Sessions, d.Codec, renderer, d.Log)
	articleHandler := articles.NewHandler(
		articles.NewService(d.Articles, upload.NewThumbnails(d.Blobs)),
		renderer, d.Log,
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, render.M{"status": "ok"})
	})

	if d.StaticDir != "" {
		FileServer(r, "/static", http.Dir(d.StaticDir))
	}
	if d.Thumbnails != nil {
		r.Get("/static/"+upload.PublicPrefix+"/{name}", thumbnailHandler(d.Thumbnails, d.Log))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Codec, d.Sessions, d.Log))
		r.NotFound(pages.NotFound)

		r.Get("/", pages.Home)
		r.Get("/about", pages.About)
		r.Get("/contact", pages.Contact)

		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Get("/signup", authHandler.SignupForm)
		r.Post("/signup", authHandler.Signup)
		r.Get("/logout", authHandler.Logout)

		r.Get("/articles", articleHandler.List)
		r.Get("/singlepage", articleHandler.Single)

		// Admin routes, guarded only when REQUIRE_AUTH is set
		r.Group(func(r chi.Router) {
			if d.RequireAuth {
				r.Use(middleware.RequireAuth)
			}
			r.Get("/adminpage", pages.Dashboard)
			r.Get("/publish", articleHandler.PublishForm)
			r.Post("/publish", articleHandler.Publish)
			r.Get("/update_article/{title}", articleHandler.EditForm)
			r.Post("/update_article/{title}", articleHandler.Update)
		})
	})

	return r, nil
}

// thumbnailHandler streams a stored thumbnail from src.
func thumbnailHandler(src upload.BlobSource, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name != upload.SanitizeFilename(name) {
			http.NotFound(w, r)
			return
		}
		data, ct, err := src.Download(r.Context(), name)
		if errors.Is(err, common.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Errorw("thumbnail download failed", "name", name, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if ct == "" {
			ct = mime.TypeByExtension(path.Ext(name))
		}
		w.Header().Set("Content-Type", ct)
		w.Write(data)
	}
}

// FileServer serves root under path without directory listings.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}
