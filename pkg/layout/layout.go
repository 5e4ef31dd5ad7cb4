// Package layout positions a style tree as block-flow boxes. Width is
// resolved top-down against the containing block, heights accumulate
// bottom-up as the recursion returns, so one pass per node suffices.
package layout

import (
	"strings"

	"finch/pkg/html"
	"finch/pkg/style"
)

// NewViewport builds the containing block for a whole page: a content
// rect of the given size at the origin with no edges.
func NewViewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}

// Layout builds and positions the layout tree for a styled node against
// the given containing block. It returns nil when the node is hidden.
// Layout is total: it cannot fail, malformed styles resolve to zeroes.
func Layout(styled *style.StyledNode, containing Dimensions) *Box {
	root := BuildBoxTree(styled)
	if root == nil {
		return nil
	}
	// The root consumes the viewport's width but starts its own flow,
	// so the containing height resets to zero.
	containing.Content.Height = 0
	root.layout(containing)
	return root
}

// BuildBoxTree converts a styled subtree into unpositioned boxes.
// display:none nodes and their subtrees produce nothing; text nodes do
// not get boxes of their own, they are painted from their container.
func BuildBoxTree(styled *style.StyledNode) *Box {
	if styled == nil || styled.Style.IsHidden() {
		return nil
	}
	if styled.Node.Type != html.ElementNode {
		return nil
	}

	box := &Box{Styled: styled, Type: InlineBox}
	if styled.Style.IsBlock() {
		box.Type = BlockBox
	}

	for _, child := range styled.Children {
		if childBox := BuildBoxTree(child); childBox != nil {
			box.Children = append(box.Children, childBox)
		}
	}
	box.Children = wrapInlineRuns(box.Children)
	return box
}

// wrapInlineRuns encloses consecutive inline siblings in an anonymous
// block when the container mixes block and inline children, so that
// block stacking only ever deals with block-level boxes.
func wrapInlineRuns(children []*Box) []*Box {
	hasBlock := false
	hasInline := false
	for _, c := range children {
		switch c.Type {
		case BlockBox:
			hasBlock = true
		case InlineBox:
			hasInline = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	var out []*Box
	var run *Box
	for _, c := range children {
		if c.Type == InlineBox {
			if run == nil {
				run = &Box{Type: AnonymousBox}
				out = append(out, run)
			}
			run.Children = append(run.Children, c)
			continue
		}
		run = nil
		out = append(out, c)
	}
	return out
}

// layout resolves this box and its subtree against a containing block.
// The containing block's Content.Height acts as the vertical cursor of
// the parent's flow at call time.
func (b *Box) layout(containing Dimensions) {
	b.calculateWidth(containing)
	b.calculatePosition(containing)
	b.layoutChildren()
	b.calculateHeight()
}

// calculateWidth resolves the content width and horizontal margins.
// Leftover horizontal space goes to an auto width first, then to auto
// margins (split evenly when both sides are auto, which centers the box).
func (b *Box) calculateWidth(containing Dimensions) {
	s := b.Style()
	d := &b.Dimensions

	d.Padding.Top = s.PaddingTop
	d.Padding.Right = s.PaddingRight
	d.Padding.Bottom = s.PaddingBottom
	d.Padding.Left = s.PaddingLeft
	d.Border = EdgeSizes{Top: s.BorderWidth, Right: s.BorderWidth, Bottom: s.BorderWidth, Left: s.BorderWidth}
	d.Margin.Top = s.MarginTop
	d.Margin.Bottom = s.MarginBottom

	marginLeft := s.MarginLeft
	marginRight := s.MarginRight
	if s.MarginLeftAuto {
		marginLeft = 0
	}
	if s.MarginRightAuto {
		marginRight = 0
	}

	widthAuto := true
	width := 0.0
	switch {
	case s.Width != nil:
		width = *s.Width
		widthAuto = false
	case s.WidthPercent != nil:
		width = containing.Content.Width * *s.WidthPercent / 100.0
		widthAuto = false
	}

	total := marginLeft + marginRight +
		d.Border.Left + d.Border.Right +
		d.Padding.Left + d.Padding.Right + width
	underflow := containing.Content.Width - total

	switch {
	case widthAuto:
		// Auto width absorbs the free space; auto margins collapse to 0.
		if underflow < 0 {
			underflow = 0
		}
		width = underflow
	case s.MarginLeftAuto && s.MarginRightAuto:
		marginLeft = underflow / 2
		marginRight = underflow / 2
	case s.MarginLeftAuto:
		marginLeft = underflow
	case s.MarginRightAuto:
		marginRight = underflow
	default:
		// Overconstrained: the right margin takes the slack, which may
		// push it negative (overflow to the right).
		marginRight += underflow
	}

	if width < 0 {
		width = 0
	}
	d.Content.Width = width
	d.Margin.Left = marginLeft
	d.Margin.Right = marginRight
}

func (b *Box) calculatePosition(containing Dimensions) {
	d := &b.Dimensions
	d.Content.X = containing.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	// Content.Height of the containing block is the flow cursor: the
	// summed margin-box heights of preceding siblings.
	d.Content.Y = containing.Content.Y + containing.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

func (b *Box) layoutChildren() {
	d := &b.Dimensions
	for _, child := range b.Children {
		child.layout(*d)
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateHeight applies an explicit height override, or, when the box
// holds only text, approximates a single line from the font metrics.
func (b *Box) calculateHeight() {
	s := b.Style()
	if s.Height != nil {
		b.Dimensions.Content.Height = *s.Height
		return
	}
	if b.Dimensions.Content.Height == 0 && b.hasTextContent() {
		b.Dimensions.Content.Height = s.FontSize * s.LineHeight
	}
}

func (b *Box) hasTextContent() bool {
	if b.Styled == nil {
		return false
	}
	for _, child := range b.Styled.Children {
		if child.Node.Type == html.TextNode && strings.TrimSpace(child.Node.Text) != "" {
			return true
		}
	}
	return false
}
