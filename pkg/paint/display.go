// Package paint turns a positioned layout tree into draw commands, or
// alternatively flattens a style tree into line-oriented text runs for
// renderers that consume lines instead of rectangles.
package paint

import (
	"strings"

	"finch/pkg/css"
	"finch/pkg/html"
	"finch/pkg/layout"
	"finch/pkg/style"
)

// CommandType tags the draw command variants.
type CommandType int

const (
	// SolidColorCmd fills a rectangle with one color.
	SolidColorCmd CommandType = iota
	// TextCmd draws a text run inside a rectangle.
	TextCmd
)

// DisplayCommand is one primitive draw operation. Commands are ordered
// back to front: later commands paint over earlier ones. FontSize and
// Bold are set on text commands only.
type DisplayCommand struct {
	Type     CommandType
	Color    css.Color
	Rect     layout.Rect
	Text     string
	FontSize float64
	Bold     bool
}

// BuildDisplayList walks the layout tree in pre-order and emits each
// box's background, borders, and text before its children, which yields
// correct paint order.
func BuildDisplayList(root *layout.Box) []DisplayCommand {
	var list []DisplayCommand
	paintBox(&list, root)
	return list
}

func paintBox(list *[]DisplayCommand, box *layout.Box) {
	if box == nil {
		return
	}
	paintBackground(list, box)
	paintBorders(list, box)
	paintText(list, box)
	for _, child := range box.Children {
		paintBox(list, child)
	}
}

func paintBackground(list *[]DisplayCommand, box *layout.Box) {
	s := box.Style()
	if s.BackgroundColor.IsTransparent() {
		return
	}
	*list = append(*list, DisplayCommand{
		Type:  SolidColorCmd,
		Color: s.BackgroundColor,
		Rect:  box.Dimensions.BorderBox(),
	})
}

func paintBorders(list *[]DisplayCommand, box *layout.Box) {
	s := box.Style()
	if s.BorderWidth <= 0 || s.BorderColor.IsTransparent() {
		return
	}
	d := box.Dimensions
	border := d.BorderBox()

	edges := []layout.Rect{
		{X: border.X, Y: border.Y, Width: d.Border.Left, Height: border.Height},
		{X: border.X + border.Width - d.Border.Right, Y: border.Y, Width: d.Border.Right, Height: border.Height},
		{X: border.X, Y: border.Y, Width: border.Width, Height: d.Border.Top},
		{X: border.X, Y: border.Y + border.Height - d.Border.Bottom, Width: border.Width, Height: d.Border.Bottom},
	}
	for _, edge := range edges {
		*list = append(*list, DisplayCommand{Type: SolidColorCmd, Color: s.BorderColor, Rect: edge})
	}
}

// paintText emits one Text command per direct text child. Text rects are
// approximated by the container's content rect; there is no glyph
// measurement at this layer.
func paintText(list *[]DisplayCommand, box *layout.Box) {
	if box.Styled == nil {
		return
	}
	s := box.Style()
	for _, child := range box.Styled.Children {
		if child.Node.Type != html.TextNode {
			continue
		}
		text := strings.TrimSpace(child.Node.Text)
		if text == "" {
			continue
		}
		*list = append(*list, DisplayCommand{
			Type:     TextCmd,
			Color:    s.Color,
			Rect:     box.Dimensions.Content,
			Text:     text,
			FontSize: s.FontSize,
			Bold:     s.FontWeight == style.FontWeightBold,
		})
	}
}
