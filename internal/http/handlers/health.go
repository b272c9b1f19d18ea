package handlers

import (
	"net/http"
	"time"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "mockup generation service is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root serves a small service descriptor so persistence-mode deployments are
// self-describing.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"service": "mockupgen",
		"endpoints": map[string]string{
			"health":   "GET /health",
			"generate": "POST /api/generate-mockup",
			"download": "GET /download/{filename}",
			"uploads":  "GET /uploads/{filename}",
		},
	})
}
