package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mockupgen/internal/domain"
)

// Download streams a persisted mockup. A file the sweeper removed between
// the caller learning the URL and requesting it is an ordinary 404.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, err := a.Store.Open(filename)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			a.fail(w, http.StatusNotFound, "File not found", "")
			return
		}
		a.Logger.Error().Err(err).Str("filename", filename).Msg("handlers: open download failed")
		a.fail(w, http.StatusInternalServerError, "Failed to read file", err.Error())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.fail(w, http.StatusNotFound, "File not found", "")
		return
	}

	http.ServeContent(w, r, filename, info.ModTime(), f)
}
