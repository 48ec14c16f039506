// Package http provides HTTP routing and middleware configuration
// for the departamento-del-agua API.
package http

import (
	"net/http"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the API.
// It applies request logging and bearer-token authentication, and mounts
// the auth, personal and archivos endpoints plus the static upload dir.
//
// Routes:
//
//	POST   /auth/login                → authHandler.Login (public)
//	POST   /personal                  → personalHandler.Create
//	GET    /personal                  → personalHandler.List
//	GET    /personal/{id}             → personalHandler.Get
//	PUT    /personal/{id}             → personalHandler.Update (full)
//	PATCH  /personal/{id}             → personalHandler.Update (partial)
//	DELETE /personal/{id}             → personalHandler.Delete (soft)
//	POST   /archivos/upload           → archivoHandler.Upload (multipart)
//	GET    /archivos/download/{id}    → archivoHandler.Download
//	GET    /archivos/files/           → archivoHandler.List
//	DELETE /archivos/files/{id}       → archivoHandler.Delete
//	GET    /uploads/*                 → stored files (public)
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger)   — logs incoming requests
//  2. BearerAuth(validator)        — enforces bearer-token auth
//     (login and /uploads/ are exempt)
func NewRouter(
	authHandler *AuthHandler,
	personalHandler *PersonalHandler,
	archivoHandler *ArchivoHandler,
	validator middleware.TokenValidator,
	uploadDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce bearer-token authentication
	r.Use(middleware.BearerAuth(validator))

	r.Route("/auth", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Post("/login", authHandler.Login)
	})

	r.Route("/personal", func(r chi.Router) {
		r.With(chiMiddleware.AllowContentType("application/json")).Post("/", personalHandler.Create)
		r.Get("/", personalHandler.List)
		r.Get("/{id}", personalHandler.Get)
		r.Put("/{id}", personalHandler.Update(false))
		r.Patch("/{id}", personalHandler.Update(true))
		r.Delete("/{id}", personalHandler.Delete)
	})

	r.Route("/archivos", func(r chi.Router) {
		r.Post("/upload", archivoHandler.Upload)
		r.Get("/download/{id}", archivoHandler.Download)
		r.Get("/files/", archivoHandler.List)
		r.Delete("/files/{id}", archivoHandler.Delete)
	})

	// Serve stored files under the ruta recorded at upload time.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return r
}
