package resource

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"finch/pkg/html"
	"finch/std/net"
)

// Fetcher retrieves the bytes behind a URL. std/net.Client satisfies it;
// tests substitute in-memory implementations.
type Fetcher interface {
	Fetch(rawURL string) (body []byte, contentType string, err error)
}

// DefaultFetcher returns the standard HTTP-backed fetcher.
func DefaultFetcher(timeout time.Duration, log *zap.Logger) Fetcher {
	return net.NewClient(timeout, log)
}

// LoadPage fetches a page, fetches its linked stylesheets, and renders
// it. extraCSS sheets apply after the document's own. A failed page
// fetch or markup parse fails the load; a failed stylesheet fetch only
// loses that sheet, matching the fail-soft CSS policy.
func (e *Engine) LoadPage(f Fetcher, pageURL string, extraCSS ...string) (*Page, error) {
	body, contentType, err := f.Fetch(pageURL)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pageURL, err)
	}
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		e.log.Warn("unexpected content type",
			zap.String("url", pageURL),
			zap.String("content_type", contentType))
	}

	doc, err := html.ParseDocument(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	// Page sheets cascade in the order encountered in the document, so
	// inline <style> blocks and fetched <link> sheets interleave here.
	var sheets []string
	for _, src := range sheetSources(doc.Root) {
		if src.inline != "" {
			sheets = append(sheets, src.inline)
			continue
		}
		sheetURL := net.ResolveURL(pageURL, src.href)
		sheet, sheetType, err := f.Fetch(sheetURL)
		if err != nil {
			e.log.Warn("stylesheet skipped",
				zap.String("url", sheetURL),
				zap.Error(err))
			continue
		}
		// A wrong content type is logged but the sheet is still parsed;
		// CSS parsing is fail-soft anyway.
		if sheetType != "" && !strings.Contains(sheetType, "css") {
			e.log.Warn("stylesheet has unexpected content type",
				zap.String("url", sheetURL),
				zap.String("content_type", sheetType))
		}
		sheets = append(sheets, string(sheet))
	}
	sheets = append(sheets, extraCSS...)

	return e.RenderDocument(doc, sheets), nil
}

// sheetSource is one stylesheet reference found in the document: either
// the text of a <style> block or the href of a link[rel=stylesheet].
type sheetSource struct {
	inline string
	href   string
}

// sheetSources collects stylesheet references in document order.
func sheetSources(node *html.Node) []sheetSource {
	var sources []sheetSource
	if node.Type == html.ElementNode {
		switch node.TagName {
		case "style":
			if css := node.TextContent(); strings.TrimSpace(css) != "" {
				sources = append(sources, sheetSource{inline: css})
			}
		case "link":
			rel, _ := node.GetAttribute("rel")
			if strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
				if href, ok := node.GetAttribute("href"); ok && href != "" {
					sources = append(sources, sheetSource{href: href})
				}
			}
		}
	}
	for _, child := range node.Children {
		sources = append(sources, sheetSources(child)...)
	}
	return sources
}
