package style

import "finch/pkg/css"

// Display is the resolved display keyword.
type Display string

const (
	DisplayBlock  Display = "block"
	DisplayInline Display = "inline"
	DisplayNone   Display = "none"
)

type FontWeight int

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

type TextDecoration int

const (
	TextDecorationNone TextDecoration = iota
	TextDecorationUnderline
	TextDecorationLineThrough
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
	TextAlignJustify
)

// ComputedStyle is the fully resolved style record for one node: a flat
// struct of numeric and enum fields filled in by the cascade. The property
// set is closed, so "missing property falls back to its default" is just a
// zero-initialized or pre-seeded field, never a map lookup. Records are
// created once per render pass and never mutated afterwards; the type is a
// plain value and copies cheaply.
type ComputedStyle struct {
	Display        Display
	FontSize       float64 // px
	FontWeight     FontWeight
	FontStyle      FontStyle
	TextDecoration TextDecoration
	TextAlign      TextAlign
	LineHeight     float64 // multiplier of font size

	Color           css.Color
	BackgroundColor css.Color

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	// margin: auto is a flag per horizontal side, not a numeric value;
	// the layout engine consumes it for centering.
	MarginLeftAuto  bool
	MarginRightAuto bool

	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64

	BorderWidth  float64
	BorderColor  css.Color
	BorderRadius float64

	ListStyleType string

	// Width is the declared width in px, nil when auto. WidthPercent is
	// set instead for percentage and vw widths, resolved against the
	// containing block at layout time.
	Width        *float64
	WidthPercent *float64
	// Height in px overrides the accumulated children height when set.
	Height *float64
}

// DefaultBaseFontSize is the document base font size rem units resolve
// against.
const DefaultBaseFontSize = 16.0

// DefaultStyle returns the built-in per-node defaults. The four inherited
// fields (font-size, color, line-height, text-align) are overwritten from
// the parent before any rule applies; everything else resets to these
// values on every node.
func DefaultStyle() ComputedStyle {
	return ComputedStyle{
		Display:         DisplayInline,
		FontSize:        DefaultBaseFontSize,
		FontWeight:      FontWeightNormal,
		FontStyle:       FontStyleNormal,
		TextDecoration:  TextDecorationNone,
		TextAlign:       TextAlignLeft,
		LineHeight:      1.5,
		Color:           css.RGB(26, 26, 26),
		BackgroundColor: css.Transparent(),
		ListStyleType:   "none",
	}
}

// IsHidden reports whether the node must be excluded from layout.
func (s ComputedStyle) IsHidden() bool { return s.Display == DisplayNone }

// IsBlock reports whether the node establishes a block box.
func (s ComputedStyle) IsBlock() bool { return s.Display == DisplayBlock }
