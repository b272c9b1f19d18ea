package imagepipe

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"mockupgen/internal/domain"
)

// DefaultKeyThreshold is the luminance floor above which a pixel counts as
// background white.
const DefaultKeyThreshold = 240

// KeyOutWhite turns every pixel whose R, G and B channels all exceed the
// threshold fully transparent and leaves every other pixel untouched. The
// result is always PNG; a lossy format would silently drop the alpha channel.
//
// This is a content-blind heuristic for flat white backgrounds: legitimate
// white design elements get keyed out with the background. Accepted
// limitation.
func KeyOutWhite(data []byte, threshold uint8) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("key background: %w: %v", domain.ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i := 0; i < len(out.Pix); i += 4 {
		r, g, b := out.Pix[i], out.Pix[i+1], out.Pix[i+2]
		if r > threshold && g > threshold && b > threshold {
			out.Pix[i+3] = 0
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("key background: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
