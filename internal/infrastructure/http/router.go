package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/infrastructure/http/handlers"
	"github.com/memberd/memberd/internal/infrastructure/http/middleware"
)

// RouterConfig carries everything the router needs to assemble the
// middleware chain and mount the handlers.
type RouterConfig struct {
	Logger        zerolog.Logger
	Memberships   *handlers.MembershipsHandler
	Health        *handlers.HealthHandler
	Auth          *middleware.AuthValidator
	RateLimiter   *middleware.RateLimiter
	CORSOrigins   []string
	IsDevelopment bool
}

// NewRouter assembles the full middleware chain and routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.SecureHeaders(cfg.IsDevelopment))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", cfg.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}
		if cfg.Auth != nil {
			r.Use(cfg.Auth.Handler)
		}
		cfg.Memberships.Routes(r)
	})

	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
