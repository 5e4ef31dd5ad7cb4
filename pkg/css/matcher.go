package css

import (
	"strings"

	"finch/pkg/html"
)

// Matches reports whether the selector matches the given element node.
// Universal matches everything; every present part of a compound selector
// must match.
func (s Selector) Matches(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	if s.Universal {
		return true
	}
	if s.TagName != "" && !strings.EqualFold(s.TagName, node.TagName) {
		return false
	}
	if s.ID != "" && node.ID() != s.ID {
		return false
	}
	for _, class := range s.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	// An empty selector ({} parsed from junk) matches nothing.
	return s.TagName != "" || s.ID != "" || len(s.Classes) > 0
}

// Matches reports whether any of the rule's selectors matches the node
// (a selector list is disjunctive: "h1, h2 { ... }").
func (r Rule) Matches(node *html.Node) bool {
	for _, sel := range r.Selectors {
		if sel.Matches(node) {
			return true
		}
	}
	return false
}
