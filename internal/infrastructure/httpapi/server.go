package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const defaultRequestTimeout = 30 * time.Second

// Server is the chi router with the standard middleware stack.
type Server struct{ mux *chi.Mux }

// New builds the router. All middlewares go before any routes are added.
func New(logger *slog.Logger, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	m := chi.NewRouter()
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	// cancels the request context, which aborts the in-flight fetch
	m.Use(chimw.Timeout(requestTimeout))
	m.Use(Metrics)
	m.Use(Logger(logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
