package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields    = errors.New("Missing required fields: mockupUrl and designUrl are required")
	ErrNoCandidate      = errors.New("no response candidates returned by the AI model")
	ErrNoImagePart      = errors.New("no image data in the AI response")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image data")
	ErrFileNotFound     = errors.New("file not found")
)

// FetchError reports a failed download of a caller-supplied image URL.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
