package css

import (
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color. Alpha is in [0,1]; channels are 0-255.
type Color struct {
	R, G, B uint8
	A       float64
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1.0} }

func RGBA(r, g, b uint8, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// Transparent is fully transparent black.
func Transparent() Color { return Color{} }

// IsTransparent reports whether the color would paint nothing.
func (c Color) IsTransparent() bool { return c.A == 0 }

var namedColors = map[string]Color{
	"black":       RGB(0, 0, 0),
	"white":       RGB(255, 255, 255),
	"red":         RGB(255, 0, 0),
	"green":       RGB(0, 128, 0),
	"blue":        RGB(0, 0, 255),
	"yellow":      RGB(255, 255, 0),
	"cyan":        RGB(0, 255, 255),
	"magenta":     RGB(255, 0, 255),
	"gray":        RGB(128, 128, 128),
	"grey":        RGB(128, 128, 128),
	"silver":      RGB(192, 192, 192),
	"maroon":      RGB(128, 0, 0),
	"olive":       RGB(128, 128, 0),
	"lime":        RGB(0, 255, 0),
	"aqua":        RGB(0, 255, 255),
	"teal":        RGB(0, 128, 128),
	"navy":        RGB(0, 0, 128),
	"fuchsia":     RGB(255, 0, 255),
	"purple":      RGB(128, 0, 128),
	"orange":      RGB(255, 165, 0),
	"pink":        RGB(255, 192, 203),
	"brown":       RGB(165, 42, 42),
	"transparent": RGBA(0, 0, 0, 0),
}

// NamedColor looks up a CSS named color (case-insensitive).
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa notations.
func ParseHexColor(s string) (Color, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		r, okR := hexByte(hex[0:1] + hex[0:1])
		g, okG := hexByte(hex[1:2] + hex[1:2])
		b, okB := hexByte(hex[2:3] + hex[2:3])
		if okR && okG && okB {
			return RGB(r, g, b), true
		}
	case 6:
		r, okR := hexByte(hex[0:2])
		g, okG := hexByte(hex[2:4])
		b, okB := hexByte(hex[4:6])
		if okR && okG && okB {
			return RGB(r, g, b), true
		}
	case 8:
		r, okR := hexByte(hex[0:2])
		g, okG := hexByte(hex[2:4])
		b, okB := hexByte(hex[4:6])
		a, okA := hexByte(hex[6:8])
		if okR && okG && okB && okA {
			return RGBA(r, g, b, float64(a)/255.0), true
		}
	}
	return Color{}, false
}

func hexByte(s string) (uint8, bool) {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// ParseRGB parses rgb(r, g, b) and rgba(r, g, b, a). Channel values may be
// 0-255 integers or percentages; alpha is a 0-1 number.
func ParseRGB(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	open := strings.Index(s, "(")
	if open == -1 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	fn := s[:open]
	if fn != "rgb" && fn != "rgba" {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	channels := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		part := strings.TrimSpace(parts[i])
		isPercent := strings.HasSuffix(part, "%")
		n, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil {
			return Color{}, false
		}
		if isPercent {
			n = n * 255 / 100
		}
		channels[i] = clampByte(n)
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, false
		}
		alpha = a
	}
	return RGBA(channels[0], channels[1], channels[2], alpha), true
}

// clampByte rounds to the nearest channel value; truncation would turn
// 100% (100*2.55 = 254.999...) into 254.
func clampByte(n float64) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(math.Round(n))
}
