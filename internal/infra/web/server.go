package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/usecase"
)

// Server exposes the submission boundary: enqueue an optimization request,
// inspect a job's state, and the operational endpoints.
type Server struct {
	subUC  usecase.SubmissionUseCase
	apiKey string
	log    *zerolog.Logger
}

func NewServer(subUC usecase.SubmissionUseCase, apiKey string, logger *zerolog.Logger) *Server {
	return &Server{
		subUC:  subUC,
		apiKey: apiKey,
		log:    logger,
	}
}

// Router builds the HTTP routing tree. API routes sit behind bearer auth;
// health and metrics stay open for probes and scrapers.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(s.authMiddleware)
		api.Post("/optimization", enqueueHandler(s.subUC, s.log))
		api.Get("/optimization/jobs/{id}", jobStatusHandler(s.subUC))
	})

	return r
}

// authMiddleware provides simple Bearer token authentication for the API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
