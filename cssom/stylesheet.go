// Package cssom parses CSS text into a rule-list model: comments and
// whitespace stripped, at-rules classified, selector lists and
// declaration blocks handed off as raw text for the selector and style
// packages to compile, per spec.md §3.1/§4.2.
package cssom

import "strings"

// Declaration is one property: value pair from a declaration block,
// in source order.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Origin distinguishes stylesheet origins for the cascade (spec.md §4.2:
// "origin ... user-agent, author, or inline").
type Origin int

const (
	OriginUserAgent Origin = iota
	OriginUser
	OriginAuthor
)

// Rule is one qualified rule: a comma-separated selector list (left
// uncompiled here — that's the selector package's job) plus its
// declaration block.
type Rule struct {
	SelectorText string
	Declarations []Declaration
	Origin       Origin
	// Order is the rule's position in document order across the whole
	// stylesheet, used as the cascade's final tiebreaker.
	Order int
}

// MediaRule is an @media block: a raw condition string (left to the
// mediaquery package to evaluate) plus the rules nested inside it.
type MediaRule struct {
	Condition string
	Rules     []Rule
}

// Stylesheet is a parsed, uncompiled CSS stylesheet.
type Stylesheet struct {
	Rules      []Rule
	MediaRules []MediaRule
}

// Parse parses CSS text into a Stylesheet. Unknown/unsupported at-rules
// (@font-face, @page, @keyframes, @supports, @font-feature-values) are
// recognized and discarded rather than mis-parsed as qualified rules,
// per spec.md §4.2's at-rule handling.
func Parse(css string, origin Origin) *Stylesheet {
	css = stripComments(css)
	sheet := &Stylesheet{}
	p := &parser{src: css}
	order := 0
	p.parseRuleList(sheet, origin, &order, false)
	return sheet
}

type parser struct {
	src string
	pos int
}

func (p *parser) parseRuleList(sheet *Stylesheet, origin Origin, order *int, insideMedia bool) {
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return
		}
		if p.src[p.pos] == '}' && insideMedia {
			p.pos++
			return
		}
		if p.src[p.pos] == '@' {
			p.parseAtRule(sheet, origin, order)
			continue
		}
		brace := strings.IndexByte(p.src[p.pos:], '{')
		if brace < 0 {
			return
		}
		selText := strings.TrimSpace(p.src[p.pos : p.pos+brace])
		bodyStart := p.pos + brace
		bodyEnd := matchBrace(p.src, bodyStart)
		if bodyEnd < 0 {
			return
		}
		body := p.src[bodyStart+1 : bodyEnd]
		p.pos = bodyEnd + 1
		if selText == "" {
			continue
		}
		decls := parseDeclarations(body)
		if len(decls) == 0 {
			continue
		}
		sheet.Rules = append(sheet.Rules, Rule{
			SelectorText: selText,
			Declarations: decls,
			Origin:       origin,
			Order:        *order,
		})
		*order++
	}
}

func (p *parser) parseAtRule(sheet *Stylesheet, origin Origin, order *int) {
	start := p.pos
	nameEnd := start + 1
	for nameEnd < len(p.src) && isIdentChar(p.src[nameEnd]) {
		nameEnd++
	}
	name := strings.ToLower(p.src[start+1 : nameEnd])

	brace := strings.IndexAny(p.src[nameEnd:], "{;")
	if brace < 0 {
		p.pos = len(p.src)
		return
	}
	brace += nameEnd

	if p.src[brace] == ';' {
		// @import, @charset, @namespace: no body, discard.
		p.pos = brace + 1
		return
	}

	condition := strings.TrimSpace(p.src[nameEnd:brace])
	bodyEnd := matchBrace(p.src, brace)
	if bodyEnd < 0 {
		p.pos = len(p.src)
		return
	}
	body := p.src[brace+1 : bodyEnd]
	p.pos = bodyEnd + 1

	switch name {
	case "media":
		inner := &parser{src: body}
		mr := MediaRule{Condition: condition}
		innerSheet := &Stylesheet{}
		inner.parseRuleList(innerSheet, origin, order, false)
		mr.Rules = innerSheet.Rules
		sheet.MediaRules = append(sheet.MediaRules, mr)
	default:
		// @font-face, @page, @keyframes, @supports,
		// @font-feature-values and anything else unrecognized:
		// parsed enough to skip cleanly, then discarded.
	}
}

func isIdentChar(c byte) bool {
	return c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		break
	}
}

func matchBrace(s string, openAt int) int {
	depth := 1
	inStr := byte(0)
	for i := openAt + 1; i < len(s); i++ {
		c := s[i]
		if inStr != 0 {
			if c == inStr && s[i-1] != '\\' {
				inStr = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseInlineStyle parses a style="..." attribute value into a
// declaration list, used for the inline-style origin of the cascade.
func ParseInlineStyle(styleAttr string) []Declaration {
	return parseDeclarations(styleAttr)
}

func parseDeclarations(body string) []Declaration {
	var decls []Declaration
	for _, part := range splitDeclarations(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		if prop == "" || value == "" {
			continue
		}
		important := false
		lower := strings.ToLower(value)
		if strings.HasSuffix(lower, "!important") {
			important = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		decls = append(decls, Declaration{Property: prop, Value: value, Important: important})
	}
	return decls
}

// splitDeclarations splits a declaration block on top-level semicolons,
// respecting parens so "rgba(0,0,0,.5)" and "calc(1px + 2px)" don't get
// chopped at an inner comma-turned-semicolon (there are none, but
// nested functions can contain literal ';' in url() data in theory;
// this keeps parens balanced regardless).
func splitDeclarations(body string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				out = append(out, body[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, body[start:])
	return out
}

func stripComments(css string) string {
	var b strings.Builder
	b.Grow(len(css))
	i := 0
	for i < len(css) {
		if i+1 < len(css) && css[i] == '/' && css[i+1] == '*' {
			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				break
			}
			i = i + 2 + end + 2
			continue
		}
		b.WriteByte(css[i])
		i++
	}
	return b.String()
}
