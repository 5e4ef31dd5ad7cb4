// Package resource drives the rendering pipeline end to end: parse the
// markup, gather stylesheets, cascade, lay out, and build the paint
// output. It owns nothing downstream of the display list.
package resource

import (
	"fmt"

	"go.uber.org/zap"

	"finch/pkg/css"
	"finch/pkg/html"
	"finch/pkg/layout"
	"finch/pkg/paint"
	"finch/pkg/style"
)

// Page is the result of one render pass. All trees reference the same
// DOM; none of them is mutated after RenderPage returns, so a Page may
// be read from multiple goroutines.
type Page struct {
	Document    *html.Document
	Styled      *style.StyledNode
	Root        *layout.Box
	DisplayList []paint.DisplayCommand
	Runs        []paint.Run
}

// Engine renders pages against a fixed viewport. One engine may render
// many pages; each call is independent.
type Engine struct {
	viewportWidth  float64
	viewportHeight float64
	defaultCSS     string
	log            *zap.Logger
}

// NewEngine creates an engine for the given viewport. A nil logger
// disables logging.
func NewEngine(viewportWidth, viewportHeight float64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		defaultCSS:     style.DefaultCSS(),
		log:            log,
	}
}

// SetDefaultCSS replaces the built-in user agent stylesheet source.
func (e *Engine) SetDefaultCSS(cssText string) {
	e.defaultCSS = cssText
}

// RenderPage runs the full pipeline on raw markup. extraCSS sheets apply
// after any <style> blocks found in the document, in argument order.
// The only failure mode is a markup parse error; everything past parsing
// is total.
func (e *Engine) RenderPage(source string, extraCSS ...string) (*Page, error) {
	doc, err := html.ParseDocument(source)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	sheets := append(append([]string{}, doc.Stylesheets...), extraCSS...)
	return e.RenderDocument(doc, sheets), nil
}

// RenderDocument runs cascade, layout, and paint on an already parsed
// document. sheets is the complete page stylesheet list in cascade
// order; the document's own Stylesheets field is not consulted here, so
// callers that interleave inline and fetched sheets control the order.
func (e *Engine) RenderDocument(doc *html.Document, sheets []string) *Page {
	resolver := style.NewResolver(e.viewportWidth, e.viewportHeight)
	resolver.SetDefaultStylesheet(css.Parse(e.defaultCSS))
	for _, sheetText := range sheets {
		resolver.AddStylesheet(css.Parse(sheetText))
	}

	styled := resolver.Resolve(doc.Root)
	root := layout.Layout(styled, layout.NewViewport(e.viewportWidth, e.viewportHeight))
	page := &Page{
		Document: doc,
		Styled:   styled,
		Root:     root,
		Runs:     paint.Flatten(styled),
	}
	if root != nil {
		page.DisplayList = paint.BuildDisplayList(root)
	}

	e.log.Debug("page rendered",
		zap.String("title", doc.Title),
		zap.Int("elements", doc.Root.CountElements()),
		zap.Int("stylesheets", len(sheets)),
		zap.Int("commands", len(page.DisplayList)),
		zap.Int("runs", len(page.Runs)))
	return page
}
