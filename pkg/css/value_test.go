package css

import "testing"

func TestParseValue_Classification(t *testing.T) {
	tests := []struct {
		raw  string
		want ValueType
	}{
		{"#ff0000", ColorValue},
		{"#abc", ColorValue},
		{"#11223344", ColorValue},
		{"red", ColorValue},
		{"Transparent", ColorValue},
		{"rgb(1, 2, 3)", ColorValue},
		{"rgba(1, 2, 3, 0.5)", ColorValue},
		{"url(image.png)", URL},
		{"url('image.png')", URL},
		{"12px", Length},
		{"1.5em", Length},
		{"2rem", Length},
		{"50vw", Length},
		{"30vh", Length},
		{"12pt", Length},
		{"50%", Percentage},
		{"1.5", Number},
		{"0", Number},
		{"auto", Keyword},
		{"sans-serif", Keyword},
		{"#zzz", Keyword}, // bad hex falls through to keyword
	}
	for _, tt := range tests {
		if got := ParseValue(tt.raw); got.Type != tt.want {
			t.Errorf("ParseValue(%q): expected type %v, got %v (%+v)", tt.raw, tt.want, got.Type, got)
		}
	}
}

func TestParseValue_LengthNumbers(t *testing.T) {
	v := ParseValue("42.5px")
	if v.Num != 42.5 || v.Unit != Px {
		t.Errorf("expected 42.5px, got %+v", v)
	}
	p := ParseValue("33%")
	if p.Type != Percentage || p.Num != 33 {
		t.Errorf("expected 33%%, got %+v", p)
	}
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#ff8000")
	if !ok || c.R != 255 || c.G != 128 || c.B != 0 || c.A != 1.0 {
		t.Errorf("expected #ff8000, got %+v", c)
	}
	short, ok := ParseHexColor("#f00")
	if !ok || short != RGB(255, 0, 0) {
		t.Errorf("expected #f00 == red, got %+v", short)
	}
	withAlpha, ok := ParseHexColor("#00000080")
	if !ok || withAlpha.A < 0.49 || withAlpha.A > 0.51 {
		t.Errorf("expected ~0.5 alpha, got %+v", withAlpha)
	}
	if _, ok := ParseHexColor("#12345"); ok {
		t.Error("expected 5-digit hex to fail")
	}
}

func TestParseRGB(t *testing.T) {
	c, ok := ParseRGB("rgb(10, 20, 30)")
	if !ok || c != RGB(10, 20, 30) {
		t.Errorf("expected rgb(10,20,30), got %+v", c)
	}
	a, ok := ParseRGB("rgba(10, 20, 30, 0.25)")
	if !ok || a.A != 0.25 {
		t.Errorf("expected alpha 0.25, got %+v", a)
	}
	// Channels round to the nearest byte: 100% is exactly 255, not 254,
	// and 50% (127.5) rounds up to 128.
	p, ok := ParseRGB("rgb(100%, 0%, 50%)")
	if !ok || p.R != 255 || p.G != 0 || p.B != 128 {
		t.Errorf("expected percentage channels, got %+v", p)
	}
	if _, ok := ParseRGB("rgb(1, 2)"); ok {
		t.Error("expected two-channel rgb to fail")
	}
}

func TestNamedColor(t *testing.T) {
	if c, ok := NamedColor("ORANGE"); !ok || c != RGB(255, 165, 0) {
		t.Errorf("expected case-insensitive orange, got %+v", c)
	}
	if c, ok := NamedColor("transparent"); !ok || !c.IsTransparent() {
		t.Errorf("expected transparent, got %+v", c)
	}
	if _, ok := NamedColor("notacolor"); ok {
		t.Error("expected unknown name to miss")
	}
}
