package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler builds the router. Routes are matched in the order declared here;
// guards run before the handler bodies.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/time", s.dbTime)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.With(s.RequireAuth).Post("/logout", s.logout)
	})

	r.Route("/candidature", func(r chi.Router) {
		r.Use(s.RequireAuth, s.RequireRole(models.RoleCandidat))
		r.Post("/", s.submitCandidature)
		r.Get("/", s.getCandidature)
		r.Post("/document", s.requestDocumentUpload)
		r.Get("/document", s.requestDocumentDownload)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(s.RequireAuth)
		r.Post("/", s.sendMessage)
		r.Get("/{withUserId}", s.listConversation)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(s.RequireAuth, s.RequireRole(models.RoleAdmin))
		r.Get("/", s.listUsers)
		r.Put("/{id}/role", s.setUserRole)
		r.Delete("/{id}", s.deleteUser)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
