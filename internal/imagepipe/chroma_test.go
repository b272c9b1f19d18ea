package imagepipe

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"mockupgen/internal/domain"
)

func TestKeyOutWhiteMakesNearWhiteTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 250, G: 248, B: 245, A: 255}) // near-white, keyed
	img.SetNRGBA(1, 0, color.NRGBA{R: 240, G: 240, B: 240, A: 255}) // at threshold, kept
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})     // red, kept

	out, err := KeyOutWhite(encodePNG(t, img), DefaultKeyThreshold)
	if err != nil {
		t.Fatalf("KeyOutWhite returned error: %v", err)
	}

	decoded, format := decodeImage(t, out)
	if format != "png" {
		t.Fatalf("keyed output must be png, got %q", format)
	}

	keyed := color.NRGBAModel.Convert(decoded.At(0, 0)).(color.NRGBA)
	if keyed.A != 0 {
		t.Fatalf("near-white pixel not keyed: alpha=%d", keyed.A)
	}

	at := color.NRGBAModel.Convert(decoded.At(1, 0)).(color.NRGBA)
	if at.A != 255 || at.R != 240 || at.G != 240 || at.B != 240 {
		t.Fatalf("threshold pixel must be untouched, got %+v", at)
	}

	red := color.NRGBAModel.Convert(decoded.At(2, 0)).(color.NRGBA)
	if red.A != 255 || red.R != 255 || red.G != 0 || red.B != 0 {
		t.Fatalf("colored pixel must be untouched, got %+v", red)
	}
}

func TestKeyOutWhiteRejectsGarbage(t *testing.T) {
	_, err := KeyOutWhite([]byte("nope"), DefaultKeyThreshold)
	if !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}
