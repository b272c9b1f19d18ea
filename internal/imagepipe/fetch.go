package imagepipe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"mockupgen/internal/domain"
)

// Fetcher downloads caller-supplied image URLs. A fetch is a single attempt
// with no retry; transient upstream failures surface to the caller unchanged.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a Fetcher. A nil client gets a reusable default with
// a sane timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves the raw bytes behind rawURL together with the
// server-declared content type. Servers that omit Content-Type are assumed
// to serve PNG; the normalizer verifies the claim either way.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.ImageAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.ImageAsset{}, &domain.FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.ImageAsset{}, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return domain.ImageAsset{}, &domain.FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ImageAsset{}, &domain.FetchError{URL: rawURL, Err: err}
	}

	mimeType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/png"
	}

	return domain.ImageAsset{Data: data, MIMEType: mimeType}, nil
}
