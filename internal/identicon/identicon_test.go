package identicon

import (
	"testing"
)

func TestGlyphDeterministic(t *testing.T) {
	address := "0x1234567890123456789012345678901234567890"

	first := Glyph(address)
	second := Glyph(address)

	if first == "" {
		t.Fatal("Glyph should not be empty")
	}

	if first != second {
		t.Errorf("Expected identical glyphs for same address, got '%s' and '%s'", first, second)
	}
}

func TestGlyphIgnoresCase(t *testing.T) {
	lower := "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
	checksummed := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	if Glyph(lower) != Glyph(checksummed) {
		t.Error("Expected same glyph for same address in different casing")
	}
}

func TestGlyphIgnoresWhitespace(t *testing.T) {
	address := "0x1234567890123456789012345678901234567890"

	if Glyph(address) != Glyph("  "+address+"  ") {
		t.Error("Expected same glyph for padded address")
	}
}

func TestColourPairDistinct(t *testing.T) {
	addresses := []string{
		"0x0000000000000000000000000000000000000001",
		"0x1234567890123456789012345678901234567890",
		"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
	}

	for _, address := range addresses {
		first, second := colourPair(digestOf(address))
		if first == second {
			t.Errorf("Expected distinct colour pair for %s, got '%s' twice", address, first)
		}
		if first == "" || second == "" {
			t.Errorf("Expected non-empty colours for %s", address)
		}
	}
}

func TestGradientDeterministic(t *testing.T) {
	address := "0x1234567890123456789012345678901234567890"

	first := Gradient(address, address)
	second := Gradient(address, address)

	if first == "" {
		t.Fatal("Gradient should not be empty")
	}

	if first != second {
		t.Error("Expected identical gradients for same address")
	}
}

func TestGradientShortText(t *testing.T) {
	address := "0x1234567890123456789012345678901234567890"

	// A single rune must not panic the blend stepper
	if Gradient(address, "x") == "" {
		t.Error("Expected non-empty gradient for single-rune text")
	}
}
