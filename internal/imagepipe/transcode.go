package imagepipe

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"

	"mockupgen/internal/domain"
)

// TranscodeResult carries the re-encoded image plus size metrics for
// observability.
type TranscodeResult struct {
	Data            []byte
	MIMEType        string
	Width           int
	Height          int
	OriginalBytes   int
	TranscodedBytes int
	Reduction       float64 // 1 - out/in, recomputed per call
}

// Transcode resizes the image so neither dimension exceeds spec.MaxDimension
// (fit-inside, aspect preserved, never upscaled) and re-encodes it at the
// requested format and quality. The quality parameter only affects JPEG; PNG
// always encodes at maximum lossless compression. Model output is typically
// oversized uncompressed PNG, so this runs on every response regardless of
// the caller's format choice.
func Transcode(data []byte, spec domain.OutputSpec) (TranscodeResult, error) {
	spec = spec.Normalize()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TranscodeResult{}, fmt.Errorf("transcode: %w: %v", domain.ErrUnsupportedImage, err)
	}

	// Thumbnail downscales to fit the bounding box and returns the original
	// image unchanged when it already fits.
	resized := resize.Thumbnail(uint(spec.MaxDimension), uint(spec.MaxDimension), img, resize.Lanczos3)

	var buf bytes.Buffer
	switch spec.Format {
	case domain.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: spec.Quality})
	}
	if err != nil {
		return TranscodeResult{}, fmt.Errorf("transcode: encode %s: %w", spec.Format, err)
	}

	bounds := resized.Bounds()
	return TranscodeResult{
		Data:            buf.Bytes(),
		MIMEType:        spec.MIMEType(),
		Width:           bounds.Dx(),
		Height:          bounds.Dy(),
		OriginalBytes:   len(data),
		TranscodedBytes: buf.Len(),
		Reduction:       1 - float64(buf.Len())/float64(len(data)),
	}, nil
}
