package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"mockupgen/internal/infra"
	"mockupgen/internal/mockup"
	"mockupgen/internal/storage"
)

// Generator is the slice of the mockup service the handlers depend on.
type Generator interface {
	Generate(ctx context.Context, req mockup.Request) (mockup.Result, error)
}

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Mockups       Generator
	Store         *storage.FileStore
	OutputMode    string
	PublicBaseURL string
	Logger        *infra.Logger
}

// NewApp builds the handler container. Store may be nil in inline mode.
func NewApp(mockups Generator, store *storage.FileStore, cfg *infra.Config, logger *infra.Logger) *App {
	return &App{
		Mockups:       mockups,
		Store:         store,
		OutputMode:    cfg.OutputMode,
		PublicBaseURL: cfg.PublicBaseURL,
		Logger:        logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes the uniform error envelope. message carries the underlying
// error verbatim and is omitted when empty.
func (a *App) fail(w http.ResponseWriter, code int, errText, message string) {
	a.json(w, code, errorResponse{Success: false, Error: errText, Message: message})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
