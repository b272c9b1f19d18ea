package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"mockupgen/internal/http/handlers"
	"mockupgen/internal/infra"
	"mockupgen/internal/mockup"
	"mockupgen/internal/storage"
)

type noopGenerator struct{}

func (noopGenerator) Generate(ctx context.Context, req mockup.Request) (mockup.Result, error) {
	return mockup.Result{}, nil
}

func testRouter(t *testing.T, mode string) (http.Handler, *storage.FileStore) {
	t.Helper()
	cfg := &infra.Config{
		OutputMode:    mode,
		PublicBaseURL: "http://localhost:3000",
		UploadsPath:   t.TempDir(),
	}
	var store *storage.FileStore
	if mode == infra.OutputModePersist {
		var err error
		store, err = storage.NewFileStore(cfg.UploadsPath)
		if err != nil {
			t.Fatalf("NewFileStore returned error: %v", err)
		}
	}
	logger := infra.Logger(zerolog.New(io.Discard))
	app := handlers.NewApp(noopGenerator{}, store, cfg, &logger)
	return NewRouter(app, cfg, logger), store
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterHealthAvailableInBothModes(t *testing.T) {
	for _, mode := range []string{infra.OutputModeInline, infra.OutputModePersist} {
		router, _ := testRouter(t, mode)
		if rec := get(t, router, "/health"); rec.Code != http.StatusOK {
			t.Fatalf("mode %s: /health status %d", mode, rec.Code)
		}
	}
}

func TestRouterPersistOnlyRoutes(t *testing.T) {
	router, store := testRouter(t, infra.OutputModePersist)

	if rec := get(t, router, "/"); rec.Code != http.StatusOK {
		t.Fatalf("persist mode: / status %d", rec.Code)
	}

	filename, err := store.SaveMockup(context.Background(), []byte("bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("SaveMockup returned error: %v", err)
	}
	if rec := get(t, router, "/uploads/"+filename); rec.Code != http.StatusOK {
		t.Fatalf("persist mode: /uploads status %d", rec.Code)
	}
	if rec := get(t, router, "/download/"+filename); rec.Code != http.StatusOK {
		t.Fatalf("persist mode: /download status %d", rec.Code)
	}
}

func TestRouterInlineModeHidesPersistRoutes(t *testing.T) {
	router, _ := testRouter(t, infra.OutputModeInline)

	if rec := get(t, router, "/download/whatever.jpg"); rec.Code != http.StatusNotFound {
		t.Fatalf("inline mode: /download status %d want 404", rec.Code)
	}
	if rec := get(t, router, "/uploads/whatever.jpg"); rec.Code != http.StatusNotFound {
		t.Fatalf("inline mode: /uploads status %d want 404", rec.Code)
	}
}
