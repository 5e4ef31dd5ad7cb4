package css

import (
	"strconv"
	"strings"
)

// ValueType discriminates the Value tagged union.
type ValueType int

const (
	Keyword ValueType = iota
	Length
	Percentage
	ColorValue
	Number
	URL
)

// Unit is a CSS length unit.
type Unit string

const (
	Px  Unit = "px"
	Em  Unit = "em"
	Rem Unit = "rem"
	Vh  Unit = "vh"
	Vw  Unit = "vw"
	Pt  Unit = "pt"
	Cm  Unit = "cm"
	Mm  Unit = "mm"
	In  Unit = "in"
)

// lengthUnits is the known unit table, tried in order. "%" classifies
// specially into a Percentage value. "in" must come after the longer
// suffixes so that e.g. "2vmin" does not match it by accident.
var lengthUnits = []Unit{Px, Em, Rem, Vh, Vw, "%", Pt, Cm, Mm, In}

// Value is one declared CSS value.
type Value struct {
	Type    ValueType
	Keyword string  // Keyword, URL
	Num     float64 // Length, Percentage, Number
	Unit    Unit    // Length
	Color   Color   // ColorValue
}

func KeywordValue(kw string) Value { return Value{Type: Keyword, Keyword: kw} }

func LengthValue(n float64, u Unit) Value { return Value{Type: Length, Num: n, Unit: u} }

func PercentValue(n float64) Value { return Value{Type: Percentage, Num: n} }

func NumberValue(n float64) Value { return Value{Type: Number, Num: n} }

func MakeColorValue(c Color) Value { return Value{Type: ColorValue, Color: c} }

// IsAuto reports whether the value is the keyword "auto".
func (v Value) IsAuto() bool {
	return v.Type == Keyword && strings.EqualFold(v.Keyword, "auto")
}

// ParseValue classifies a raw declaration value. Classification is tried
// in order: hex color, named color, rgb()/rgba(), url(), length with a
// known unit suffix, bare number, and finally a keyword carrying the raw
// string. It never fails.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "#") {
		if c, ok := ParseHexColor(raw); ok {
			return MakeColorValue(c)
		}
	}
	if c, ok := NamedColor(raw); ok {
		return MakeColorValue(c)
	}
	if strings.HasPrefix(raw, "rgb") {
		if c, ok := ParseRGB(raw); ok {
			return MakeColorValue(c)
		}
	}
	if strings.HasPrefix(raw, "url(") && strings.HasSuffix(raw, ")") {
		inner := strings.TrimSpace(raw[4 : len(raw)-1])
		inner = strings.Trim(inner, `"'`)
		return Value{Type: URL, Keyword: inner}
	}
	if v, ok := parseLength(raw); ok {
		return v
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberValue(n)
	}
	return KeywordValue(raw)
}

func parseLength(raw string) (Value, bool) {
	for _, unit := range lengthUnits {
		suffix := string(unit)
		if !strings.HasSuffix(raw, suffix) {
			continue
		}
		numPart := raw[:len(raw)-len(suffix)]
		n, err := strconv.ParseFloat(strings.TrimSpace(numPart), 64)
		if err != nil {
			continue
		}
		if suffix == "%" {
			return PercentValue(n), true
		}
		return LengthValue(n, unit), true
	}
	return Value{}, false
}
