package mockup

import (
	"strings"
	"testing"

	"mockupgen/internal/domain"
)

func TestBuildInstructionMediumDefault(t *testing.T) {
	got := BuildInstruction(Request{DesignSize: domain.DesignMedium})

	checks := []string{
		"Apply the design",
		"lighting, shadows and perspective",
		"medium size",
		"Keep the product, background and framing unchanged",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing %q: %s", expect, got)
		}
	}
	if strings.Contains(got, "style reference") {
		t.Fatalf("no reference requested, instruction mentions one: %s", got)
	}
}

func TestBuildInstructionSizes(t *testing.T) {
	small := BuildInstruction(Request{DesignSize: domain.DesignSmall})
	if !strings.Contains(small, "small") {
		t.Fatalf("small size not reflected: %s", small)
	}
	large := BuildInstruction(Request{DesignSize: domain.DesignLarge})
	if !strings.Contains(large, "most of the printable surface") {
		t.Fatalf("large size not reflected: %s", large)
	}
}

func TestBuildInstructionReferenceAndExtras(t *testing.T) {
	got := BuildInstruction(Request{
		DesignSize:   domain.DesignMedium,
		ReferenceURL: "https://example.com/ref.png",
		Prompt:       "use a matte finish",
	})
	if !strings.Contains(got, "style reference") {
		t.Fatalf("reference hint missing: %s", got)
	}
	if !strings.Contains(got, "Additional instructions: use a matte finish") {
		t.Fatalf("extra prompt missing: %s", got)
	}
}
