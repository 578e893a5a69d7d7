package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"surety/internal/platform/metrics"
	"surety/internal/platform/middleware"
	"surety/pkg/platform/httputil"
)

// HealthCheck reports one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Routes registers a feature's endpoints on the root router.
type Routes interface {
	Register(r chi.Router)
}

// Config wires the root router.
type Config struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]HealthCheck
	// Gauges are extra numbers reported by /healthz, such as the outbox backlog.
	Gauges map[string]func(ctx context.Context) (int, error)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
	Gauges map[string]int    `json:"gauges,omitempty"`
}

// NewRouter applies the shared middleware chain, mounts /healthz and /metrics,
// then lets each feature register its routes.
func NewRouter(cfg Config, features ...Routes) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/healthz", healthHandler(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, f := range features {
		f.Register(r)
	}
	return r
}

func healthHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(cfg.Checks) > 0 {
			resp.Checks = make(map[string]string, len(cfg.Checks))
		}
		for name, check := range cfg.Checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		if len(cfg.Gauges) > 0 {
			resp.Gauges = make(map[string]int, len(cfg.Gauges))
		}
		for name, gauge := range cfg.Gauges {
			if n, err := gauge(ctx); err == nil {
				resp.Gauges[name] = n
			}
		}
		httputil.WriteJSON(w, status, resp)
	}
}
