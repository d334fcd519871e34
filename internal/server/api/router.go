package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// Routes assembles the router. Login, registration and the provider listing
// are public; every other /api route requires a bearer token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)
		r.Get("/auth/providers", s.authProviders)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/me", s.me)
			r.Post("/auth/logout", s.logout)

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", s.listCollections)
				r.Post("/", s.createCollection)

				// The static qa-pairs segment wins over {id}, so pair
				// routes can live under the collections prefix.
				r.Route("/qa-pairs/{id}", func(r chi.Router) {
					r.Get("/", s.getQAPair)
					r.Patch("/", s.updateQAPair)
					r.Put("/", s.updateQAPair)
					r.Delete("/", s.deleteQAPair)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.getCollection)
					r.Put("/", s.updateCollection)
					r.Delete("/", s.deleteCollection)
					r.Get("/qa-pairs", s.listQAPairs)
					r.Post("/qa-pairs", s.createQAPair)
				})
			})

			r.Route("/retrieval", func(r chi.Router) {
				r.Post("/search", s.search)
				r.Get("/search", s.searchByProvider)
				r.Get("/data_sources", s.listSources)
				r.Get("/templates", s.listTemplates)
				r.Get("/templates/{id}", s.getTemplate)
			})

			r.Route("/generation", func(r chi.Router) {
				r.Post("/generate", s.generate)
				r.Get("/models", s.listModels)
			})
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Health{Status: "ok", Message: "API is operational"})
}
