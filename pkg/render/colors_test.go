package render

import (
	"regexp"
	"testing"
)

func TestPaletteColorWraps(t *testing.T) {
	if paletteColor(0) != "#4ecdc4" {
		t.Errorf("paletteColor(0) = %q", paletteColor(0))
	}
	if paletteColor(10) != paletteColor(0) {
		t.Error("palette should wrap at 10")
	}
	if paletteColor(13) != paletteColor(3) {
		t.Error("palette index should be mod 10")
	}
}

func TestPaletteIsLowercaseHex(t *testing.T) {
	re := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i, c := range palette {
		if !re.MatchString(c) {
			t.Errorf("palette[%d] = %q is not lowercase #rrggbb", i, c)
		}
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		in     string
		amount float64
		want   string
	}{
		{"#ffffff", 0.3, "#b3b3b3"}, // round(255*0.7) = 179 = 0xb3
		{"#000000", 0.3, "#000000"},
		{"#4ecdc4", 0.3, "#379089"}, // 78→55, 205→144, 196→137
		{"#FF6B6B", 0.3, "#b34b4b"}, // uppercase input, lowercase output
		{"#808080", 0.5, "#404040"},
	}

	for _, tt := range tests {
		if got := darken(tt.in, tt.amount); got != tt.want {
			t.Errorf("darken(%q, %v) = %q, want %q", tt.in, tt.amount, got, tt.want)
		}
	}
}

func TestDarkenMalformedPassthrough(t *testing.T) {
	for _, in := range []string{"", "red", "#fff", "#gggggg"} {
		if got := darken(in, 0.3); got != in {
			t.Errorf("darken(%q) = %q, want passthrough", in, got)
		}
	}
}
