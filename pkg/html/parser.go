package html

import (
	"fmt"
	"strings"
	"unicode"
)

// Parser is a strict recursive-descent HTML parser. It consumes the input
// once, left to right, by a cursor position. Structural violations
// (mismatched close tags, unterminated quotes, unquoted attribute values,
// premature EOF) abort the whole parse. There is no error recovery; this
// is deliberately not a browser-grade forgiving parser.
type Parser struct {
	input string
	pos   int
}

// Parse parses HTML source into a DOM tree. If the top level yields exactly
// one node, that node is the root; otherwise an implicit <html> wrapper
// element is synthesized around all top-level nodes.
func Parse(source string) (*Node, error) {
	p := &Parser{input: source}
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// parseNodes only stops early at a closing tag, which has no
		// matching open tag at the top level.
		return nil, fmt.Errorf("unexpected closing tag at position %d", p.pos)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	root := NewElement("html", nil)
	root.Children = nodes
	return root, nil
}

// ParseDocument parses HTML source and harvests document metadata: the
// <title> text and the text content of every <style> element, in document
// order. The harvested elements stay in the tree; they default to
// display:none during style resolution.
func ParseDocument(source string) (*Document, error) {
	root, err := Parse(source)
	if err != nil {
		return nil, err
	}
	doc := &Document{Root: root}
	if title := root.FindFirst("title"); title != nil {
		doc.Title = strings.TrimSpace(title.TextContent())
	}
	collectStylesheets(root, &doc.Stylesheets)
	return doc, nil
}

func collectStylesheets(n *Node, sheets *[]string) {
	if n.Type == ElementNode && n.TagName == "style" {
		if css := n.TextContent(); strings.TrimSpace(css) != "" {
			*sheets = append(*sheets, css)
		}
	}
	for _, child := range n.Children {
		collectStylesheets(child, sheets)
	}
}

// parseNodes parses sibling nodes until EOF or the start of a closing tag.
func (p *Parser) parseNodes() ([]*Node, error) {
	nodes := make([]*Node, 0)
	for {
		p.skipWhitespace()
		if p.eof() || p.startsWith("</") {
			return nodes, nil
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseNode() (*Node, error) {
	if p.peek() != '<' {
		return p.parseText(), nil
	}
	if p.startsWith("<!--") {
		return p.parseComment()
	}
	return p.parseElement()
}

// parseText consumes a raw text run up to the next '<'. No entity decoding
// happens at this layer.
func (p *Parser) parseText() *Node {
	start := p.pos
	for !p.eof() && p.peek() != '<' {
		p.pos++
	}
	return NewText(p.input[start:p.pos])
}

func (p *Parser) parseComment() (*Node, error) {
	p.pos += len("<!--")
	end := strings.Index(p.input[p.pos:], "-->")
	if end == -1 {
		return nil, fmt.Errorf("unterminated comment at position %d", p.pos)
	}
	text := p.input[p.pos : p.pos+end]
	p.pos += end + len("-->")
	return &Node{Type: CommentNode, Text: text}, nil
}

// parseElement parses <name attr="value" ...>children</name>. The closing
// tag name must equal the opening tag name. XHTML self-closing syntax
// (<name/>) yields an element with no children.
func (p *Parser) parseElement() (*Node, error) {
	openPos := p.pos
	p.pos++ // consume '<'
	tagName := p.readName()
	if tagName == "" {
		return nil, fmt.Errorf("expected tag name at position %d", p.pos)
	}

	attributes, selfClosing, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	node := NewElement(tagName, attributes)
	if selfClosing {
		return node, nil
	}

	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	node.Children = children

	if !p.startsWith("</") {
		return nil, fmt.Errorf("unclosed element <%s> opened at position %d", node.TagName, openPos)
	}
	p.pos += 2
	closeName := strings.ToLower(p.readName())
	if closeName != node.TagName {
		return nil, fmt.Errorf("mismatched closing tag: expected </%s>, got </%s>", node.TagName, closeName)
	}
	p.skipWhitespace()
	if p.eof() || p.peek() != '>' {
		return nil, fmt.Errorf("malformed closing tag </%s>", closeName)
	}
	p.pos++
	return node, nil
}

// parseAttributes reads attributes up to the closing '>' of an open tag.
// Returns the attributes and whether the tag was self-closing (/>).
func (p *Parser) parseAttributes() (map[string]string, bool, error) {
	attributes := make(map[string]string)
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil, false, fmt.Errorf("unexpected end of input inside tag")
		}
		switch p.peek() {
		case '>':
			p.pos++
			return attributes, false, nil
		case '/':
			p.pos++
			p.skipWhitespace()
			if p.eof() || p.peek() != '>' {
				return nil, false, fmt.Errorf("expected '>' after '/' at position %d", p.pos)
			}
			p.pos++
			return attributes, true, nil
		}
		name, value, err := p.parseAttribute()
		if err != nil {
			return nil, false, err
		}
		attributes[name] = value
	}
}

func (p *Parser) parseAttribute() (string, string, error) {
	name := strings.ToLower(p.readName())
	if name == "" {
		return "", "", fmt.Errorf("expected attribute name at position %d", p.pos)
	}
	p.skipWhitespace()
	if p.eof() || p.peek() != '=' {
		return "", "", fmt.Errorf("attribute %q is missing a value at position %d", name, p.pos)
	}
	p.pos++
	p.skipWhitespace()
	value, err := p.parseAttributeValue()
	if err != nil {
		return "", "", fmt.Errorf("attribute %q: %w", name, err)
	}
	return name, value, nil
}

// parseAttributeValue reads a quoted attribute value. Unquoted values are a
// malformed-input error.
func (p *Parser) parseAttributeValue() (string, error) {
	if p.eof() {
		return "", fmt.Errorf("unexpected end of input, expected quoted value")
	}
	quote := p.peek()
	if quote != '"' && quote != '\'' {
		return "", fmt.Errorf("unquoted value at position %d", p.pos)
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.peek() != quote {
		p.pos++
	}
	if p.eof() {
		return "", fmt.Errorf("unterminated quote opened at position %d", start-1)
	}
	value := p.input[start:p.pos]
	p.pos++
	return value, nil
}

// readName consumes a tag or attribute name: letters, digits, '-' and '_'.
func (p *Parser) readName() string {
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *Parser) peek() byte {
	return p.input[p.pos]
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *Parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.pos++
	}
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
