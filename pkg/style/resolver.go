package style

import (
	_ "embed"
	"sort"
	"strings"

	"finch/pkg/css"
	"finch/pkg/html"
)

//go:embed default.css
var defaultCSS string

// DefaultCSS returns the built-in user agent stylesheet text. Callers may
// substitute their own via Resolver.SetDefaultStylesheet.
func DefaultCSS() string { return defaultCSS }

// StyledNode pairs a DOM node with its computed style. The DOM reference
// is read-only; the styled tree never mutates the tree it was derived
// from.
type StyledNode struct {
	Node     *html.Node
	Style    ComputedStyle
	Children []*StyledNode
}

// Resolver computes styles for a whole DOM tree. It is immutable once
// resolution starts, so one resolver may serve concurrent render passes;
// viewport dimensions are explicit state here rather than globals because
// different documents may resolve against different viewports at the same
// time.
type Resolver struct {
	defaultSheet   *css.Stylesheet
	pageSheets     []*css.Stylesheet
	baseFontSize   float64
	viewportWidth  float64
	viewportHeight float64
}

// NewResolver creates a resolver for the given viewport with the built-in
// default stylesheet.
func NewResolver(viewportWidth, viewportHeight float64) *Resolver {
	return &Resolver{
		defaultSheet:   css.Parse(defaultCSS),
		baseFontSize:   DefaultBaseFontSize,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// SetDefaultStylesheet replaces the built-in user agent stylesheet.
func (r *Resolver) SetDefaultStylesheet(sheet *css.Stylesheet) {
	r.defaultSheet = sheet
}

// AddStylesheet registers a page stylesheet. Sheets apply in registration
// order; later sheets win on a per-property basis.
func (r *Resolver) AddStylesheet(sheet *css.Stylesheet) {
	r.pageSheets = append(r.pageSheets, sheet)
}

// Resolve computes the style tree for the DOM rooted at node. Resolution
// is total: every lookup has a defined fallback, so it cannot fail.
func (r *Resolver) Resolve(root *html.Node) *StyledNode {
	return r.resolveNode(root, DefaultStyle())
}

func (r *Resolver) resolveNode(node *html.Node, parent ComputedStyle) *StyledNode {
	switch node.Type {
	case html.TextNode:
		// Text nodes have no rules of their own; they take the parent's
		// resolved style by copy.
		return &StyledNode{Node: node, Style: parent}
	case html.CommentNode:
		hidden := DefaultStyle()
		hidden.Display = DisplayNone
		return &StyledNode{Node: node, Style: hidden}
	}

	style := r.computeStyle(node, parent)
	styled := &StyledNode{Node: node, Style: style}
	for _, child := range node.Children {
		styled.Children = append(styled.Children, r.resolveNode(child, style))
	}
	return styled
}

// computeStyle runs the cascade for one element: built-in defaults,
// inherited fields, tag defaults, the default stylesheet, each page
// stylesheet in registration order, and finally the inline style
// attribute. Later sources win per property; there is no specificity
// weighting beyond source order.
func (r *Resolver) computeStyle(node *html.Node, parent ComputedStyle) ComputedStyle {
	style := DefaultStyle()

	// The inherited properties default to the parent's resolved values.
	style.FontSize = parent.FontSize
	style.Color = parent.Color
	style.LineHeight = parent.LineHeight
	style.TextAlign = parent.TextAlign

	r.applyTagDefaults(node.TagName, &style)

	// em in CSS declarations resolves against this node's font size as
	// accumulated so far; the font-size property itself resolves against
	// the parent.
	parentFontSize := parent.FontSize

	r.applySheet(r.defaultSheet, node, &style, parentFontSize)
	for _, sheet := range r.pageSheets {
		r.applySheet(sheet, node, &style, parentFontSize)
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		r.applyDeclarations(css.ParseInlineStyle(styleAttr), &style, parentFontSize)
	}
	return style
}

func (r *Resolver) applySheet(sheet *css.Stylesheet, node *html.Node, style *ComputedStyle, parentFontSize float64) {
	if sheet == nil {
		return
	}
	for _, rule := range sheet.Rules {
		if rule.Matches(node) {
			r.applyDeclarations(rule.Declarations, style, parentFontSize)
		}
	}
}

// applyDeclarations applies one declaration block. font-size applies
// first so that em lengths later in the same block resolve against the
// new size; the remaining properties apply in sorted order to keep
// resolution deterministic.
func (r *Resolver) applyDeclarations(decls map[string]css.Value, style *ComputedStyle, parentFontSize float64) {
	if v, ok := decls["font-size"]; ok {
		r.applyFontSize(v, style, parentFontSize)
	}
	props := make([]string, 0, len(decls))
	for prop := range decls {
		if prop != "font-size" {
			props = append(props, prop)
		}
	}
	sort.Strings(props)
	for _, prop := range props {
		r.applyDeclaration(prop, decls[prop], style)
	}
}

func (r *Resolver) applyFontSize(v css.Value, style *ComputedStyle, parentFontSize float64) {
	switch v.Type {
	case css.Length:
		if v.Unit == css.Em {
			style.FontSize = parentFontSize * v.Num
			return
		}
		style.FontSize = r.toPx(v, parentFontSize)
	case css.Percentage:
		style.FontSize = parentFontSize * v.Num / 100.0
	case css.Number:
		style.FontSize = v.Num
	case css.Keyword:
		switch strings.ToLower(v.Keyword) {
		case "xx-small":
			style.FontSize = 9
		case "x-small":
			style.FontSize = 10
		case "small":
			style.FontSize = 13
		case "medium":
			style.FontSize = 16
		case "large":
			style.FontSize = 18
		case "x-large":
			style.FontSize = 24
		case "xx-large":
			style.FontSize = 32
		case "larger":
			style.FontSize = parentFontSize * 1.2
		case "smaller":
			style.FontSize = parentFontSize / 1.2
		}
	}
}

func (r *Resolver) applyDeclaration(property string, v css.Value, style *ComputedStyle) {
	switch property {
	case "display":
		if v.Type == css.Keyword {
			switch strings.ToLower(v.Keyword) {
			case "none":
				style.Display = DisplayNone
			case "inline":
				style.Display = DisplayInline
			default:
				// Unsupported display modes lay out as block flow.
				style.Display = DisplayBlock
			}
		}

	case "font-weight":
		switch v.Type {
		case css.Keyword:
			if kw := strings.ToLower(v.Keyword); kw == "bold" || kw == "bolder" {
				style.FontWeight = FontWeightBold
			} else {
				style.FontWeight = FontWeightNormal
			}
		case css.Number:
			if v.Num >= 700 {
				style.FontWeight = FontWeightBold
			} else {
				style.FontWeight = FontWeightNormal
			}
		}

	case "font-style":
		if v.Type == css.Keyword {
			if kw := strings.ToLower(v.Keyword); kw == "italic" || kw == "oblique" {
				style.FontStyle = FontStyleItalic
			} else {
				style.FontStyle = FontStyleNormal
			}
		}

	case "text-decoration":
		if v.Type == css.Keyword {
			switch strings.ToLower(v.Keyword) {
			case "underline":
				style.TextDecoration = TextDecorationUnderline
			case "line-through":
				style.TextDecoration = TextDecorationLineThrough
			default:
				style.TextDecoration = TextDecorationNone
			}
		}

	case "text-align":
		if v.Type == css.Keyword {
			switch strings.ToLower(v.Keyword) {
			case "center":
				style.TextAlign = TextAlignCenter
			case "right":
				style.TextAlign = TextAlignRight
			case "justify":
				style.TextAlign = TextAlignJustify
			default:
				style.TextAlign = TextAlignLeft
			}
		}

	case "line-height":
		switch v.Type {
		case css.Number:
			style.LineHeight = v.Num
		case css.Length:
			if style.FontSize > 0 {
				style.LineHeight = r.toPx(v, style.FontSize) / style.FontSize
			}
		}

	case "color":
		if v.Type == css.ColorValue {
			style.Color = v.Color
		}

	case "background-color", "background":
		if v.Type == css.ColorValue {
			style.BackgroundColor = v.Color
		}

	case "opacity":
		if v.Type == css.Number {
			style.Color.A *= v.Num
			style.BackgroundColor.A *= v.Num
		}

	case "margin-top":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.MarginTop = n
		}
	case "margin-bottom":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.MarginBottom = n
		}
	case "margin-left":
		if v.IsAuto() {
			style.MarginLeftAuto = true
		} else if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.MarginLeft = n
			style.MarginLeftAuto = false
		}
	case "margin-right":
		if v.IsAuto() {
			style.MarginRightAuto = true
		} else if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.MarginRight = n
			style.MarginRightAuto = false
		}

	case "padding-top":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.PaddingTop = n
		}
	case "padding-right":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.PaddingRight = n
		}
	case "padding-bottom":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.PaddingBottom = n
		}
	case "padding-left":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.PaddingLeft = n
		}

	case "width":
		switch v.Type {
		case css.Length:
			if v.Unit == css.Vw {
				// vw widths stay proportional; layout resolves them
				// against the containing block.
				pct := v.Num
				style.WidthPercent = &pct
				style.Width = nil
				return
			}
			w := r.toPx(v, style.FontSize)
			style.Width = &w
			style.WidthPercent = nil
		case css.Percentage:
			pct := v.Num
			style.WidthPercent = &pct
			style.Width = nil
		case css.Keyword:
			if v.IsAuto() {
				style.Width = nil
				style.WidthPercent = nil
			}
		}

	case "height":
		switch v.Type {
		case css.Length:
			h := r.toPx(v, style.FontSize)
			style.Height = &h
		case css.Keyword:
			if v.IsAuto() {
				style.Height = nil
			}
		}

	case "border-width":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.BorderWidth = n
		}
	case "border-color":
		if v.Type == css.ColorValue {
			style.BorderColor = v.Color
		}
	case "border-radius":
		if n, ok := r.lengthPx(v, style.FontSize); ok {
			style.BorderRadius = n
		}

	case "list-style-type":
		if v.Type == css.Keyword {
			style.ListStyleType = strings.ToLower(v.Keyword)
		}
	}
}

// lengthPx resolves a length-like value to pixels. Percentages here
// resolve against the current font size, matching the simplified model.
func (r *Resolver) lengthPx(v css.Value, fontSize float64) (float64, bool) {
	switch v.Type {
	case css.Length:
		return r.toPx(v, fontSize), true
	case css.Percentage:
		return fontSize * v.Num / 100.0, true
	case css.Number:
		return v.Num, true
	}
	return 0, false
}

// toPx converts a Length value to pixels. em resolves against the given
// font size, rem against the document base, vw/vh against the viewport,
// and the physical units via the usual 96dpi factors.
func (r *Resolver) toPx(v css.Value, fontSize float64) float64 {
	switch v.Unit {
	case css.Px:
		return v.Num
	case css.Em:
		return fontSize * v.Num
	case css.Rem:
		return r.baseFontSize * v.Num
	case css.Vh:
		return r.viewportHeight * v.Num / 100.0
	case css.Vw:
		return r.viewportWidth * v.Num / 100.0
	case css.Pt:
		return v.Num * 1.333
	case css.In:
		return v.Num * 96.0
	case css.Cm:
		return v.Num * 96.0 / 2.54
	case css.Mm:
		return v.Num * 96.0 / 25.4
	}
	return 0
}

// applyTagDefaults applies the fixed per-tag default table. Heading sizes
// scale geometrically off the base font size, with margins as an
// em-multiple of the heading's own size.
func (r *Resolver) applyTagDefaults(tag string, style *ComputedStyle) {
	base := r.baseFontSize
	switch tag {
	case "html", "div", "article", "aside", "footer", "header", "main",
		"nav", "section":
		style.Display = DisplayBlock

	case "hr":
		style.Display = DisplayBlock
		style.MarginTop = 8
		style.MarginBottom = 8

	case "h1":
		r.headingDefaults(style, base*2.0, 0.67)
	case "h2":
		r.headingDefaults(style, base*1.5, 0.83)
	case "h3":
		r.headingDefaults(style, base*1.17, 1.0)
	case "h4":
		r.headingDefaults(style, base*1.0, 1.33)
	case "h5":
		r.headingDefaults(style, base*0.83, 1.67)
	case "h6":
		r.headingDefaults(style, base*0.67, 2.33)

	case "p":
		style.Display = DisplayBlock
		style.MarginTop = base
		style.MarginBottom = base

	case "ul", "ol":
		style.Display = DisplayBlock
		style.MarginTop = base
		style.MarginBottom = base
		style.PaddingLeft = 40

	case "li":
		style.Display = DisplayBlock
		style.ListStyleType = "disc"

	case "blockquote":
		style.Display = DisplayBlock
		style.MarginTop = base
		style.MarginBottom = base
		style.MarginLeft = 40
		style.MarginRight = 40

	case "pre":
		style.Display = DisplayBlock
		style.BackgroundColor = css.RGB(245, 245, 245)
		style.FontSize = base * 0.9
		style.MarginTop = base
		style.MarginBottom = base
		style.PaddingTop = 10
		style.PaddingRight = 10
		style.PaddingBottom = 10
		style.PaddingLeft = 10

	case "code":
		style.BackgroundColor = css.RGB(245, 245, 245)
		style.FontSize = base * 0.9

	case "body":
		style.Display = DisplayBlock
		style.MarginTop = 8
		style.MarginRight = 8
		style.MarginBottom = 8
		style.MarginLeft = 8

	case "a":
		style.Color = css.RGB(26, 13, 171)
		style.TextDecoration = TextDecorationUnderline

	case "strong", "b":
		style.FontWeight = FontWeightBold
	case "em", "i":
		style.FontStyle = FontStyleItalic
	case "u":
		style.TextDecoration = TextDecorationUnderline

	case "script", "style", "head", "title", "meta", "link", "noscript", "template":
		style.Display = DisplayNone
	}
}

func (r *Resolver) headingDefaults(style *ComputedStyle, fontSize, marginEm float64) {
	style.Display = DisplayBlock
	style.FontSize = fontSize
	style.FontWeight = FontWeightBold
	style.MarginTop = fontSize * marginEm
	style.MarginBottom = fontSize * marginEm
}
