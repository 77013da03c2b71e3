// Package httptransport assembles the public HTTP surface: the
// middleware stack plus the submission and health routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"merididi/internal/platform/config"
	"merididi/internal/platform/health"
	"merididi/internal/submission/handler"
	"merididi/internal/submission/metrics"
	"merididi/pkg/platform/middleware/metadata"
	"merididi/pkg/platform/middleware/request"
)

// NewRouter wires all public endpoints with middleware. Timeout must stay
// above what a slow multipart upload needs; the submission client gives
// up after 30 seconds either way.
func NewRouter(h *handler.Handler, healthH *health.Handler, m *metrics.Metrics, cfg config.Server, logger *slog.Logger) http.Handler {
	meta := metadata.New(metadata.Config{TrustedProxies: cfg.TrustedProxies})

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(meta.Handler)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(30 * time.Second))
	r.Use(request.BodyLimit(cfg.MaxUploadBytes))
	r.Use(request.ContentType("application/json", "multipart/form-data"))
	r.Use(request.Latency(m))

	h.Register(r)
	healthH.Register(r)

	return r
}
