package imagepipe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"mockupgen/internal/domain"
)

const canonicalMIMEType = "image/png"

// NormalizePNG guarantees the returned asset decodes as PNG, the one raster
// format the generation API reliably accepts. Assets already declared as PNG
// pass through byte-identical; everything else is decoded by its actual
// encoding and re-encoded. Bytes that decode as no supported format (an HTML
// error page served with an image content type, a truncated download) fail
// here instead of propagating downstream.
func NormalizePNG(asset domain.ImageAsset) (domain.ImageAsset, error) {
	if asset.MIMEType == canonicalMIMEType {
		return asset, nil
	}

	img, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("normalize %s: %w: %v", asset.MIMEType, domain.ErrUnsupportedImage, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domain.ImageAsset{}, fmt.Errorf("normalize: encode png: %w", err)
	}

	return domain.ImageAsset{Data: buf.Bytes(), MIMEType: canonicalMIMEType}, nil
}
