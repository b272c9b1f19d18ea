package imagepipe

import (
	"image/color"
	"math"
	"testing"

	"mockupgen/internal/domain"
)

func TestTranscodeFitsInsideMaxDimension(t *testing.T) {
	data := encodePNG(t, solidImage(1600, 800, color.NRGBA{R: 120, G: 130, B: 140, A: 255}))

	res, err := Transcode(data, domain.OutputSpec{Format: "jpeg", Quality: 80, MaxDimension: 1000})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if res.Width != 1000 || res.Height != 500 {
		t.Fatalf("dimensions mismatch: got %dx%d want 1000x500", res.Width, res.Height)
	}
	if res.MIMEType != "image/jpeg" {
		t.Fatalf("MIMEType mismatch: got %q", res.MIMEType)
	}
	if _, format := decodeImage(t, res.Data); format != "jpeg" {
		t.Fatalf("output format mismatch: got %q", format)
	}
}

func TestTranscodeNeverUpscales(t *testing.T) {
	data := encodePNG(t, solidImage(300, 200, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))

	res, err := Transcode(data, domain.OutputSpec{Format: "png", MaxDimension: 2000})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if res.Width != 300 || res.Height != 200 {
		t.Fatalf("small image must not be enlarged: got %dx%d", res.Width, res.Height)
	}
}

func TestTranscodeReductionMetric(t *testing.T) {
	data := encodePNG(t, solidImage(400, 400, color.NRGBA{R: 77, G: 77, B: 77, A: 255}))

	res, err := Transcode(data, domain.OutputSpec{Format: "jpeg", Quality: 50, MaxDimension: 400})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if res.OriginalBytes != len(data) {
		t.Fatalf("OriginalBytes mismatch: got %d want %d", res.OriginalBytes, len(data))
	}
	if res.TranscodedBytes != len(res.Data) {
		t.Fatalf("TranscodedBytes mismatch: got %d want %d", res.TranscodedBytes, len(res.Data))
	}
	want := 1 - float64(res.TranscodedBytes)/float64(res.OriginalBytes)
	if math.Abs(res.Reduction-want) > 1e-9 {
		t.Fatalf("Reduction mismatch: got %f want %f", res.Reduction, want)
	}
}

func TestTranscodePNGIgnoresQuality(t *testing.T) {
	data := encodePNG(t, solidImage(64, 64, color.NRGBA{R: 9, G: 9, B: 9, A: 255}))

	low, err := Transcode(data, domain.OutputSpec{Format: "png", Quality: 1, MaxDimension: 64})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	high, err := Transcode(data, domain.OutputSpec{Format: "png", Quality: 100, MaxDimension: 64})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if len(low.Data) != len(high.Data) {
		t.Fatal("quality must have no effect on png output")
	}
	if low.MIMEType != "image/png" {
		t.Fatalf("MIMEType mismatch: got %q", low.MIMEType)
	}
}

func TestTranscodeAppliesDefaults(t *testing.T) {
	data := encodePNG(t, solidImage(10, 10, color.NRGBA{A: 255}))

	res, err := Transcode(data, domain.OutputSpec{Format: "bmp", Quality: 400})
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if res.MIMEType != "image/jpeg" {
		t.Fatalf("unknown format must fall back to jpeg, got %q", res.MIMEType)
	}
}
