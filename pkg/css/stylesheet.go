package css

import "strings"

// Selector is a simple selector: an optional tag name, optional id, and
// zero or more classes. Compound forms (div.card, p#intro) require all
// parts to match. Universal is the bare "*".
type Selector struct {
	TagName   string
	ID        string
	Classes   []string
	Universal bool
}

// Rule is one CSS rule: an ordered selector list (disjunctive) and the
// declared property values. Shorthands are already expanded.
type Rule struct {
	Selectors    []Selector
	Declarations map[string]Value
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Parse parses CSS text into a stylesheet. Parsing is fail-soft:
// unparseable declarations are dropped, at-rules are skipped entirely, and
// wholly malformed input yields an empty rule list. It never errors,
// deliberately the opposite policy from the markup parser.
func Parse(cssText string) *Stylesheet {
	sheet := &Stylesheet{Rules: make([]Rule, 0)}
	for _, block := range splitRuleBlocks(stripComments(cssText)) {
		if rule, ok := parseRule(block); ok {
			sheet.Rules = append(sheet.Rules, rule)
		}
	}
	return sheet
}

// stripComments removes /* ... */ comments. A '/' not followed by '*'
// passes through untouched. An unterminated comment swallows the rest of
// the input.
func stripComments(cssText string) string {
	var sb strings.Builder
	for i := 0; i < len(cssText); {
		if cssText[i] == '/' && i+1 < len(cssText) && cssText[i+1] == '*' {
			end := strings.Index(cssText[i+2:], "*/")
			if end == -1 {
				break
			}
			i += 2 + end + 2
			continue
		}
		sb.WriteByte(cssText[i])
		i++
	}
	return sb.String()
}

// splitRuleBlocks splits CSS into top-level rule blocks by brace-depth
// tracking: a block is emitted each time the depth returns to zero. This
// keeps at-rule bodies (which may nest braces) together so they can be
// skipped as a unit.
func splitRuleBlocks(cssText string) []string {
	blocks := make([]string, 0)
	depth := 0
	start := 0
	for i := 0; i < len(cssText); i++ {
		switch cssText[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				block := strings.TrimSpace(cssText[start : i+1])
				if block != "" {
					blocks = append(blocks, block)
				}
				start = i + 1
			}
			if depth < 0 {
				// Stray closing brace; resynchronize.
				depth = 0
				start = i + 1
			}
		}
	}
	return blocks
}

// parseRule parses "selector, selector { decls }". Returns false for
// blocks that yield nothing usable (at-rules, empty selector lists).
func parseRule(block string) (Rule, bool) {
	bracePos := strings.Index(block, "{")
	if bracePos == -1 {
		return Rule{}, false
	}
	selectorText := strings.TrimSpace(block[:bracePos])
	if selectorText == "" || strings.HasPrefix(selectorText, "@") {
		// @media, @keyframes and friends are skipped entirely, never
		// partially parsed.
		return Rule{}, false
	}

	declEnd := strings.LastIndex(block, "}")
	if declEnd < bracePos {
		declEnd = len(block)
	}
	declarations := ParseDeclarations(block[bracePos+1 : declEnd])

	selectors := make([]Selector, 0)
	for _, part := range strings.Split(selectorText, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if sel, ok := parseSelector(part); ok {
			selectors = append(selectors, sel)
		}
	}
	if len(selectors) == 0 {
		return Rule{}, false
	}
	return Rule{Selectors: selectors, Declarations: declarations}, true
}

// parseSelector scans one simple selector: #id, .class, a bare tag name,
// '*', or a compound of those (div.card, p#intro). Combinators, attribute
// selectors, and pseudo-classes are not supported: a selector that stops
// on an unrecognized character is reported invalid and must be dropped,
// never truncated to a broader selector than the author wrote.
func parseSelector(s string) (Selector, bool) {
	var sel Selector
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '#':
			i++
			ident := readIdentifier(s[i:])
			if ident == "" {
				return Selector{}, false
			}
			sel.ID = ident
			i += len(ident)
		case s[i] == '.':
			i++
			ident := readIdentifier(s[i:])
			if ident == "" {
				return Selector{}, false
			}
			sel.Classes = append(sel.Classes, ident)
			i += len(ident)
		case s[i] == '*':
			sel.Universal = true
			i++
		case isIdentChar(s[i]):
			ident := readIdentifier(s[i:])
			sel.TagName = strings.ToLower(ident)
			i += len(ident)
		default:
			return Selector{}, false
		}
	}
	return sel, true
}

// ParseDeclarations parses "prop: value; prop: value" text into expanded
// declarations. Used for rule bodies and for inline style attributes.
func ParseDeclarations(declText string) map[string]Value {
	declarations := make(map[string]Value)
	for _, decl := range strings.Split(declText, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colonPos := strings.Index(decl, ":")
		if colonPos == -1 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(decl[:colonPos]))
		value := strings.TrimSpace(decl[colonPos+1:])
		// Importance is not modeled; the marker is stripped.
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property == "" || value == "" {
			continue
		}
		expandDeclaration(property, value, declarations)
	}
	return declarations
}

// ParseInlineStyle parses a style="..." attribute body.
func ParseInlineStyle(styleAttr string) map[string]Value {
	return ParseDeclarations(styleAttr)
}

// expandDeclaration records a declaration, fanning out the margin and
// padding shorthands into their four longhand properties.
func expandDeclaration(property, value string, out map[string]Value) {
	switch property {
	case "margin", "padding":
		expandBoxShorthand(property, value, out)
	default:
		out[property] = ParseValue(value)
	}
}

// expandBoxShorthand applies the CSS 1/2/3/4-value fan-out:
// 1 value → all sides; 2 → [vertical, horizontal];
// 3 → [top, horizontal, bottom]; 4 → [top, right, bottom, left].
func expandBoxShorthand(prefix, value string, out map[string]Value) {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	out[prefix+"-top"] = ParseValue(top)
	out[prefix+"-right"] = ParseValue(right)
	out[prefix+"-bottom"] = ParseValue(bottom)
	out[prefix+"-left"] = ParseValue(left)
}

func readIdentifier(s string) string {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
