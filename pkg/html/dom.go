package html

import "strings"

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

// Node is one node of the DOM tree. Element nodes carry a lower-cased tag
// name and an attribute map; text and comment nodes carry only Text.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
}

// Document wraps the parsed tree with the metadata harvested from it:
// the <title> text and the contents of every <style> element, in
// document order.
type Document struct {
	Root        *Node
	Title       string
	Stylesheets []string
}

// NewElement creates an element node with the given tag name.
func NewElement(tagName string, attributes map[string]string) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tagName),
		Attributes: attributes,
		Children:   make([]*Node, 0),
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the value of the id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// ClassList returns the whitespace-split class attribute values.
func (n *Node) ClassList() []string {
	classes, ok := n.GetAttribute("class")
	if !ok {
		return nil
	}
	return strings.Fields(classes)
}

// HasClass reports whether the element carries the given class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.ClassList() {
		if c == class {
			return true
		}
	}
	return false
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// TextContent returns the concatenated text of this node and all
// descendants. Comments contribute nothing.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode:
		return n.Text
	case CommentNode:
		return ""
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// CountElements returns the number of element nodes in the subtree
// rooted at n, including n itself.
func (n *Node) CountElements() int {
	count := 0
	if n.Type == ElementNode {
		count = 1
	}
	for _, child := range n.Children {
		count += child.CountElements()
	}
	return count
}

// FindFirst returns the first element with the given tag name in a
// pre-order walk, or nil.
func (n *Node) FindFirst(tagName string) *Node {
	if n.Type == ElementNode && n.TagName == tagName {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindFirst(tagName); found != nil {
			return found
		}
	}
	return nil
}
