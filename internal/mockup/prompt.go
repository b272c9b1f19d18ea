package mockup

import (
	"strings"

	"mockupgen/internal/domain"
)

// BuildInstruction assembles the natural-language instruction that travels
// ahead of the image parts. The wording references the parts by position, so
// it has to stay in sync with the order the service builds the payload in:
// optional reference first, then the product photo, then the design.
func BuildInstruction(req Request) string {
	parts := []string{
		"Apply the design from the last image onto the product in the product photo.",
		"Follow the product's surface: wrap the design around any curvature and match the scene's lighting, shadows and perspective.",
	}

	switch req.DesignSize {
	case domain.DesignSmall:
		parts = append(parts, "Print the design small, covering roughly a quarter of the printable surface.")
	case domain.DesignLarge:
		parts = append(parts, "Print the design large, covering most of the printable surface.")
	default:
		parts = append(parts, "Print the design at a medium size, covering roughly half of the printable surface.")
	}

	if req.ReferenceURL != "" {
		parts = append(parts, "The first image is a style reference for placement and finish only; do not copy its content.")
	}

	parts = append(parts, "Keep the product, background and framing unchanged; add nothing except the design.")

	if extra := strings.TrimSpace(req.Prompt); extra != "" {
		parts = append(parts, "Additional instructions: "+extra)
	}

	return strings.Join(parts, " ")
}
