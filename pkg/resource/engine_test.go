package resource

import (
	"errors"
	"strings"
	"testing"

	"finch/pkg/css"
	"finch/pkg/html"
	"finch/pkg/paint"
	"finch/pkg/style"
)

const samplePage = `<html>
	<head>
		<title>Sample</title>
		<style>p { color: #ff0000; }</style>
	</head>
	<body>
		<h1>Heading</h1>
		<p>Body text</p>
	</body>
</html>`

func findStyled(node *style.StyledNode, tag string) *style.StyledNode {
	if node.Node.Type == html.ElementNode && node.Node.TagName == tag {
		return node
	}
	for _, child := range node.Children {
		if found := findStyled(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestRenderPagePipeline(t *testing.T) {
	e := NewEngine(1280, 720, nil)
	page, err := e.RenderPage(samplePage)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if page.Document.Title != "Sample" {
		t.Errorf("title = %q", page.Document.Title)
	}
	// The <style> block cascades onto the paragraph.
	p := findStyled(page.Styled, "p")
	if p.Style.Color != css.RGB(255, 0, 0) {
		t.Errorf("p color = %+v, want red from the style block", p.Style.Color)
	}
	if page.Root == nil {
		t.Fatal("no layout tree")
	}
	if page.Root.Dimensions.Content.Width != 1280 {
		t.Errorf("root width = %v, want 1280", page.Root.Dimensions.Content.Width)
	}
	if len(page.DisplayList) == 0 {
		t.Error("empty display list")
	}
	if len(page.Runs) == 0 {
		t.Error("empty run list")
	}
}

func TestRenderPageExtraCSSWinsOverDocumentSheets(t *testing.T) {
	e := NewEngine(1280, 720, nil)
	page, err := e.RenderPage(samplePage, `p { color: #00ff00; }`)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	p := findStyled(page.Styled, "p")
	if p.Style.Color != css.RGB(0, 255, 0) {
		t.Errorf("p color = %+v, want green from the later sheet", p.Style.Color)
	}
}

func TestRenderPageParseErrorSurfaces(t *testing.T) {
	e := NewEngine(1280, 720, nil)
	if _, err := e.RenderPage(`<div><p>unclosed</div>`); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderPageRunsCarryLinks(t *testing.T) {
	e := NewEngine(1280, 720, nil)
	page, err := e.RenderPage(`<p><a href="/next">continue</a></p>`)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	var link *paint.Run
	for i := range page.Runs {
		if page.Runs[i].Text == "continue" {
			link = &page.Runs[i]
		}
	}
	if link == nil {
		t.Fatal("link text missing from runs")
	}
	if link.Href != "/next" {
		t.Errorf("href = %q, want /next", link.Href)
	}
}

type fakeFetcher struct {
	responses map[string]string
	fetched   []string
}

func (f *fakeFetcher) Fetch(rawURL string) ([]byte, string, error) {
	f.fetched = append(f.fetched, rawURL)
	body, ok := f.responses[rawURL]
	if !ok {
		return nil, "", errors.New("connection refused")
	}
	contentType := "text/css"
	if strings.Contains(body, "<") {
		contentType = "text/html"
	}
	return []byte(body), contentType, nil
}

func TestLoadPageFetchesLinkedStylesheets(t *testing.T) {
	f := &fakeFetcher{responses: map[string]string{
		"https://example.com/index.html": `<html>
			<head><link rel="stylesheet" href="site.css" /></head>
			<body><p>hi</p></body>
		</html>`,
		"https://example.com/site.css": `p { color: #0000ff; }`,
	}}

	e := NewEngine(1280, 720, nil)
	page, err := e.LoadPage(f, "https://example.com/index.html")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	p := findStyled(page.Styled, "p")
	if p.Style.Color != css.RGB(0, 0, 255) {
		t.Errorf("p color = %+v, want blue from the linked sheet", p.Style.Color)
	}
	want := []string{
		"https://example.com/index.html",
		"https://example.com/site.css",
	}
	if len(f.fetched) != len(want) {
		t.Fatalf("fetched %v, want %v", f.fetched, want)
	}
	for i := range want {
		if f.fetched[i] != want[i] {
			t.Errorf("fetch %d = %q, want %q", i, f.fetched[i], want[i])
		}
	}
}

func TestLoadPageSheetOrderFollowsDocument(t *testing.T) {
	// A <style> block after a <link> wins the cascade; fetched sheets do
	// not jump ahead of inline ones.
	f := &fakeFetcher{responses: map[string]string{
		"https://example.com/": `<html>
			<head>
				<link rel="stylesheet" href="first.css" />
				<style>p { color: #00ff00; }</style>
			</head>
			<body><p>hi</p></body>
		</html>`,
		"https://example.com/first.css": `p { color: #0000ff; }`,
	}}

	e := NewEngine(1280, 720, nil)
	page, err := e.LoadPage(f, "https://example.com/")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	p := findStyled(page.Styled, "p")
	if p.Style.Color != css.RGB(0, 255, 0) {
		t.Errorf("p color = %+v, want green from the later style block", p.Style.Color)
	}
}

func TestLoadPageSkipsFailedStylesheet(t *testing.T) {
	f := &fakeFetcher{responses: map[string]string{
		"https://example.com/": `<html>
			<head><link rel="stylesheet" href="missing.css" /></head>
			<body><p>hi</p></body>
		</html>`,
	}}

	e := NewEngine(1280, 720, nil)
	page, err := e.LoadPage(f, "https://example.com/")
	if err != nil {
		t.Fatalf("load should survive a missing stylesheet: %v", err)
	}
	if page == nil || page.Root == nil {
		t.Fatal("page not rendered")
	}
}

func TestLoadPagePageFetchFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{responses: map[string]string{}}
	e := NewEngine(1280, 720, nil)
	if _, err := e.LoadPage(f, "https://example.com/gone"); err == nil {
		t.Fatal("expected load error")
	}
}
