package layout

import "finch/pkg/style"

// Rect is an axis-aligned rectangle in px device space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ExpandedBy grows the rect outward by the given edge sizes.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// EdgeSizes holds per-side thicknesses for one ring of the box model.
type EdgeSizes struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Dimensions is the full box model geometry for one layout box. Content
// is the innermost rect; padding, border, and margin wrap it outward in
// that order.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox is the content rect expanded by padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the padding box expanded by border widths.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the border box expanded by margins. Its height is what a
// box contributes to its parent's block flow.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxType distinguishes the three box kinds in block flow.
type BoxType int

const (
	// BlockBox participates in vertical block stacking.
	BlockBox BoxType = iota
	// InlineBox flows inside a block or anonymous container.
	InlineBox
	// AnonymousBox is a synthesized block wrapping consecutive inline
	// children of a block container. It has no styled node of its own.
	AnonymousBox
)

// Box is one node of the layout tree. Styled is nil only for anonymous
// boxes; it is a read-only view, layout never writes through it.
type Box struct {
	Type       BoxType
	Dimensions Dimensions
	Styled     *style.StyledNode
	Children   []*Box
}

// Style returns the box's computed style, or the built-in defaults for
// anonymous boxes.
func (b *Box) Style() style.ComputedStyle {
	if b.Styled == nil {
		return style.DefaultStyle()
	}
	return b.Styled.Style
}
