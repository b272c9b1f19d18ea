package domain

// ImageAsset carries raw image bytes together with the MIME type the source
// declared for them. The declared type is advisory until the bytes pass
// through the normalizer.
type ImageAsset struct {
	Data     []byte
	MIMEType string
}

// Size returns the byte length of the asset.
func (a ImageAsset) Size() int { return len(a.Data) }

// DesignSize hints how prominently the design should appear on the product.
type DesignSize string

const (
	DesignSmall  DesignSize = "small"
	DesignMedium DesignSize = "medium"
	DesignLarge  DesignSize = "large"
)

// ParseDesignSize maps a request value onto a known size, falling back to
// medium for anything unrecognized.
func ParseDesignSize(v string) DesignSize {
	switch DesignSize(v) {
	case DesignSmall, DesignMedium, DesignLarge:
		return DesignSize(v)
	default:
		return DesignMedium
	}
}

// OutputSpec governs the output transcoder.
type OutputSpec struct {
	Format       string // "jpeg" or "png"
	Quality      int    // 1..100, meaningful for JPEG only
	MaxDimension int    // fit-inside bound in pixels, never upscales
}

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"

	DefaultQuality      = 80
	DefaultMaxDimension = 2000
)

// Normalize clamps the values into their valid envelope and applies defaults.
func (s OutputSpec) Normalize() OutputSpec {
	if s.Format != FormatPNG {
		s.Format = FormatJPEG
	}
	if s.Quality < 1 || s.Quality > 100 {
		s.Quality = DefaultQuality
	}
	if s.MaxDimension <= 0 {
		s.MaxDimension = DefaultMaxDimension
	}
	return s
}

// MIMEType returns the MIME type the configured format encodes to.
func (s OutputSpec) MIMEType() string {
	if s.Format == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}
