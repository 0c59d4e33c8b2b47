package palette

import "testing"

func TestFromDigit(t *testing.T) {
	tests := []struct {
		in   byte
		want Color
	}{
		{'0', White},
		{'1', Orange},
		{'9', Cyan},
		{'a', Purple},
		{'A', Purple},
		{'e', Red},
		{'f', Black},
		{'F', Black},
	}
	for _, tt := range tests {
		got, ok := FromDigit(tt.in)
		if !ok {
			t.Fatalf("FromDigit(%q) rejected", tt.in)
		}
		if got != tt.want {
			t.Fatalf("FromDigit(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}

	for _, b := range []byte{'g', ' ', 'z', '/', ':'} {
		if _, ok := FromDigit(b); ok {
			t.Fatalf("FromDigit(%q) accepted", b)
		}
	}
}

func TestDigitRoundTrip(t *testing.T) {
	for c := White; c <= Black; c++ {
		got, ok := FromDigit(c.Digit())
		if !ok || got != c {
			t.Fatalf("round trip of %v via %q gave %v", c, c.Digit(), got)
		}
	}
}

func TestPaletteMatchesColors(t *testing.T) {
	p := Palette()
	if len(p) != 16 {
		t.Fatalf("len=%d, want 16", len(p))
	}
	if p[Red] != Red.RGBA() {
		t.Fatalf("palette[Red]=%v, want %v", p[Red], Red.RGBA())
	}
	if Black.String() != "black" || LightBlue.String() != "lightBlue" {
		t.Fatalf("unexpected names %q %q", Black.String(), LightBlue.String())
	}
}
