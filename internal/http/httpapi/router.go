package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mockupgen/internal/http/handlers"
	"mockupgen/internal/infra"
	appmw "mockupgen/internal/middleware"
)

// NewRouter wires the HTTP surface. The download and static upload routes
// only exist in persistence mode; inline deployments expose nothing but the
// health check and the generation endpoint.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		appmw.Logger(logger),
	)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(appmw.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/health", app.Health)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			r.Use(appmw.RateLimit(cfg.RateLimitPerMin, time.Minute))
		}
		r.Post("/generate-mockup", app.GenerateMockup)
	})

	if cfg.OutputMode == infra.OutputModePersist {
		r.Get("/", app.Root)
		r.Get("/download/{filename}", app.Download)
		uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsPath)))
		r.Method(http.MethodGet, "/uploads/*", uploads)
	}

	return r
}
