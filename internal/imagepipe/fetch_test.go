package imagepipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mockupgen/internal/domain"
)

func TestFetchReturnsBytesAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	asset, err := NewFetcher(srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(asset.Data) != "jpeg-bytes" {
		t.Fatalf("unexpected body: %q", asset.Data)
	}
	if asset.MIMEType != "image/jpeg" {
		t.Fatalf("MIMEType mismatch: got %q want %q", asset.MIMEType, "image/jpeg")
	}
}

func TestFetchDefaultsMissingContentTypeToPNG(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h["Content-Type"] = nil // suppress automatic detection
		w.WriteHeader(http.StatusOK)
		w.Write([]byte{0x89})
	}))
	defer srv.Close()

	asset, err := NewFetcher(srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if asset.MIMEType != "image/png" {
		t.Fatalf("MIMEType mismatch: got %q want %q", asset.MIMEType, "image/png")
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client()).Fetch(context.Background(), srv.URL)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode mismatch: got %d", fetchErr.StatusCode)
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), url)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
}
