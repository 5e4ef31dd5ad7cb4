package paint

import (
	"strings"

	"finch/pkg/html"
	"finch/pkg/style"
)

// Run is one flattened segment of page content: a piece of text with its
// resolved style, how deep in the tree it sat, and the nearest enclosing
// hyperlink target. Break runs mark block boundaries instead of carrying
// text.
type Run struct {
	Text    string
	Style   style.ComputedStyle
	Depth   int
	Href    string
	IsBreak bool
}

// Flatten walks a style tree and produces the ordered run sequence:
// block nodes open and close with a break marker (consecutive breaks
// collapse to one), list items get a leading bullet, and an enclosing
// <a href> propagates its target to every descendant run until a nested
// <a> overrides it.
func Flatten(root *style.StyledNode) []Run {
	var runs []Run
	flattenNode(&runs, root, 0, "")
	// A leading or trailing break carries no information for a line
	// renderer.
	return trimBreaks(runs)
}

func flattenNode(runs *[]Run, node *style.StyledNode, depth int, href string) {
	if node == nil || node.Style.IsHidden() {
		return
	}

	switch node.Node.Type {
	case html.TextNode:
		text := strings.TrimSpace(node.Node.Text)
		if text != "" {
			*runs = append(*runs, Run{Text: text, Style: node.Style, Depth: depth, Href: href})
		}
		return
	case html.CommentNode:
		return
	}

	if node.Node.TagName == "a" {
		if target, ok := node.Node.GetAttribute("href"); ok {
			href = target
		}
	}

	block := node.Style.IsBlock()
	if block {
		appendBreak(runs, depth)
	}
	if node.Style.ListStyleType == "disc" {
		// The bullet starts its own line even right after a break.
		*runs = append(*runs, Run{Text: "• ", Style: node.Style, Depth: depth, Href: href})
	}

	for _, child := range node.Children {
		flattenNode(runs, child, depth+1, href)
	}

	if block {
		appendBreak(runs, depth)
	}
}

// appendBreak adds a block boundary unless one is already pending.
func appendBreak(runs *[]Run, depth int) {
	if len(*runs) == 0 || (*runs)[len(*runs)-1].IsBreak {
		return
	}
	*runs = append(*runs, Run{Depth: depth, IsBreak: true})
}

func trimBreaks(runs []Run) []Run {
	for len(runs) > 0 && runs[0].IsBreak {
		runs = runs[1:]
	}
	for len(runs) > 0 && runs[len(runs)-1].IsBreak {
		runs = runs[:len(runs)-1]
	}
	return runs
}
