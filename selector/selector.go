// Package selector compiles CSS selector text into a matcher that runs
// against a dom.Arena, per spec.md §4.2. Matching walks right-to-left
// (last compound first) the way real engines do, since the rightmost
// compound is what's being tested and most selectors fail there.
package selector

import (
	"strconv"
	"strings"

	"github.com/arturoeanton/gockore/dom"
)

// Combinator joins two compound selectors in a sequence.
type Combinator int

const (
	CombinatorNone        Combinator = iota // the first (rightmost) compound
	CombinatorDescendant                    // "a b"
	CombinatorChild                         // "a > b"
	CombinatorAdjacent                      // "a + b"
	CombinatorSibling                       // "a ~ b"
)

// SimpleKind tags one simple selector within a compound.
type SimpleKind int

const (
	SimpleUniversal SimpleKind = iota
	SimpleTag
	SimpleClass
	SimpleID
	SimpleAttrPresent
	SimpleAttrEquals
	SimplePseudoClass
)

// Simple is one simple selector (tag, class, id, attribute test, or
// pseudo-class) within a compound selector.
type Simple struct {
	Kind     SimpleKind
	Value    string // tag name, class name, id, attr name, or pseudo-class name
	AttrVal  string // for SimpleAttrEquals
	NthA     int    // for nth-child(an+b) family
	NthB     int
}

// Compound is one compound selector ("div.class#id:hover") joined by
// Combinator to the previous compound in the sequence (the one to its
// right in the source text).
type Compound struct {
	Simples    []Simple
	Combinator Combinator
}

// Selector is a compiled sequence of compounds, ordered rightmost
// (index 0, Combinator=CombinatorNone) to leftmost.
type Selector struct {
	Compounds []Compound
	Spec      Specificity
	Raw       string
}

// Specificity is the (ids, classes, elements) triple per spec.md §4.2,
// compared lexicographically. The cascade package gives inline-style
// declarations a synthetic specificity (a very large IDs count) within
// the author origin rather than an origin of their own.
type Specificity struct {
	IDs, Classes, Elements int
}

// Compare returns -1, 0, or 1 as s sorts before, equal to, or after o.
func (s Specificity) Compare(o Specificity) int {
	if s.IDs != o.IDs {
		return sign(s.IDs - o.IDs)
	}
	if s.Classes != o.Classes {
		return sign(s.Classes - o.Classes)
	}
	return sign(s.Elements - o.Elements)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// ParseList splits a comma-separated selector list and compiles each.
func ParseList(text string) []Selector {
	var out []Selector
	for _, part := range splitTopLevelComma(text) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, Parse(part))
	}
	return out
}

func splitTopLevelComma(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// Parse compiles a single selector (no top-level commas).
func Parse(text string) Selector {
	raw := strings.TrimSpace(text)
	tokens := tokenizeCombinators(raw)

	var compounds []Compound
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == ">" || tok == "+" || tok == "~" || tok == " " {
			continue
		}
		comb := CombinatorNone
		if len(compounds) > 0 {
			comb = CombinatorDescendant
		}
		if i > 0 {
			switch tokens[i-1] {
			case ">":
				comb = CombinatorChild
			case "+":
				comb = CombinatorAdjacent
			case "~":
				comb = CombinatorSibling
			}
		}
		compounds = append(compounds, Compound{Simples: parseCompound(tok), Combinator: comb})
	}

	// Reverse so index 0 is the rightmost compound (the one the
	// matcher tests first).
	for l, r := 0, len(compounds)-1; l < r; l, r = l+1, r-1 {
		compounds[l], compounds[r] = compounds[r], compounds[l]
	}
	// Each compound was parsed holding the combinator to its left; after
	// the reversal that combinator belongs on the next compound, which is
	// where matchFrom reads it.
	for i := len(compounds) - 1; i > 0; i-- {
		compounds[i].Combinator = compounds[i-1].Combinator
	}
	if len(compounds) > 0 {
		compounds[0].Combinator = CombinatorNone
	}

	sel := Selector{Compounds: compounds, Raw: raw}
	sel.Spec = calcSpecificity(compounds)
	return sel
}

// tokenizeCombinators splits selector text into compound-selector
// chunks and combinator tokens, keeping ">"/"+"/"~" as their own
// tokens. Whitespace only ends a chunk and produces no token; Parse
// treats two chunks with no combinator token between them as a
// descendant combination.
func tokenizeCombinators(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '[' || c == '(':
			depth++
			cur.WriteByte(c)
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case depth > 0:
			cur.WriteByte(c)
		case c == '>' || c == '+' || c == '~':
			flush()
			tokens = append(tokens, string(c))
		case c == ' ' || c == '\t' || c == '\n':
			flush()
		default:
			cur.WriteByte(c)
		}
		i++
	}
	flush()
	return tokens
}

func parseCompound(s string) []Simple {
	var out []Simple
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '*':
			out = append(out, Simple{Kind: SimpleUniversal})
			i++
		case s[i] == '#':
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			out = append(out, Simple{Kind: SimpleID, Value: s[i+1 : j]})
			i = j
		case s[i] == '.':
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			out = append(out, Simple{Kind: SimpleClass, Value: s[i+1 : j]})
			i = j
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				i = len(s)
				break
			}
			content := s[i+1 : i+end]
			i += end + 1
			if eq := strings.IndexByte(content, '='); eq >= 0 {
				val := strings.Trim(content[eq+1:], `"'`)
				out = append(out, Simple{Kind: SimpleAttrEquals, Value: strings.TrimSpace(content[:eq]), AttrVal: val})
			} else {
				out = append(out, Simple{Kind: SimpleAttrPresent, Value: strings.TrimSpace(content)})
			}
		case s[i] == ':':
			j := i + 1
			for j < len(s) && (isIdentChar(s[j]) || s[j] == '(') {
				if s[j] == '(' {
					end := strings.IndexByte(s[j:], ')')
					if end < 0 {
						j = len(s)
						break
					}
					j += end + 1
					break
				}
				j++
			}
			name := s[i+1 : j]
			out = append(out, parsePseudoClass(name))
			i = j
		case isIdentChar(s[i]):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			out = append(out, Simple{Kind: SimpleTag, Value: strings.ToLower(s[i:j])})
			i = j
		default:
			i++
		}
	}
	return out
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parsePseudoClass compiles :first-child, :last-child, :only-child,
// :nth-child(an+b | odd | even), :not(...)-free simple forms, and
// :hover/:active/:focus/:visited as opaque names the hittest/style
// packages interpret against live interaction state.
func parsePseudoClass(name string) Simple {
	if strings.HasPrefix(name, "nth-child(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(name, "nth-child("), ")")
		a, b := parseNth(inner)
		return Simple{Kind: SimplePseudoClass, Value: "nth-child", NthA: a, NthB: b}
	}
	return Simple{Kind: SimplePseudoClass, Value: name}
}

// parseNth parses the an+b micro-syntax ("2n+1", "odd", "even", "3",
// "-n+3") into (a, b) such that the matched indices are a*n+b for n>=0.
func parseNth(s string) (a, b int) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "odd":
		return 2, 1
	case "even":
		return 2, 0
	}
	if !strings.Contains(s, "n") {
		n, _ := strconv.Atoi(s)
		return 0, n
	}
	parts := strings.SplitN(s, "n", 2)
	aStr := strings.TrimSpace(parts[0])
	switch aStr {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a, _ = strconv.Atoi(aStr)
	}
	bStr := strings.TrimSpace(parts[1])
	bStr = strings.ReplaceAll(bStr, " ", "")
	if bStr == "" {
		b = 0
	} else {
		b, _ = strconv.Atoi(bStr)
	}
	return a, b
}

func calcSpecificity(compounds []Compound) Specificity {
	var spec Specificity
	for _, c := range compounds {
		for _, s := range c.Simples {
			switch s.Kind {
			case SimpleID:
				spec.IDs++
			case SimpleClass, SimpleAttrPresent, SimpleAttrEquals, SimplePseudoClass:
				spec.Classes++
			case SimpleTag:
				spec.Elements++
			}
		}
	}
	return spec
}

// MatchState supplies the live, non-structural state a matcher needs:
// :hover/:active/:focus/:visited toggles the hittest package owns, and
// the class-attribute/id lookups come straight from the arena.
type MatchState interface {
	IsHover(ref dom.NodeRef) bool
	IsActive(ref dom.NodeRef) bool
	IsFocus(ref dom.NodeRef) bool
	IsVisited(ref dom.NodeRef) bool
}

// NopState answers every dynamic-pseudo-class query with false, for
// matching contexts (e.g. print/offscreen) with no interaction state.
type NopState struct{}

func (NopState) IsHover(dom.NodeRef) bool   { return false }
func (NopState) IsActive(dom.NodeRef) bool  { return false }
func (NopState) IsFocus(dom.NodeRef) bool   { return false }
func (NopState) IsVisited(dom.NodeRef) bool { return false }

// Matches reports whether sel matches ref in arena, consulting state
// for dynamic pseudo-classes.
func Matches(sel Selector, arena *dom.Arena, ref dom.NodeRef, state MatchState) bool {
	if len(sel.Compounds) == 0 {
		return false
	}
	return matchFrom(sel.Compounds, 0, arena, ref, state)
}

func matchFrom(compounds []Compound, idx int, arena *dom.Arena, ref dom.NodeRef, state MatchState) bool {
	if arena.Type(ref) != dom.NodeElement {
		return false
	}
	if !matchCompound(compounds[idx].Simples, arena, ref, state) {
		return false
	}
	if idx+1 >= len(compounds) {
		return true
	}
	next := compounds[idx+1]
	switch next.Combinator {
	case CombinatorChild:
		parent := arena.Parent(ref)
		if parent == dom.NilRef {
			return false
		}
		return matchFrom(compounds, idx+1, arena, parent, state)
	case CombinatorDescendant:
		for p := arena.Parent(ref); p != dom.NilRef; p = arena.Parent(p) {
			if matchFrom(compounds, idx+1, arena, p, state) {
				return true
			}
		}
		return false
	case CombinatorAdjacent:
		sib := prevElementSibling(arena, ref)
		if sib == dom.NilRef {
			return false
		}
		return matchFrom(compounds, idx+1, arena, sib, state)
	case CombinatorSibling:
		parent := arena.Parent(ref)
		if parent == dom.NilRef {
			return false
		}
		for _, sib := range arena.Children(parent) {
			if sib == ref {
				break
			}
			if arena.Type(sib) != dom.NodeElement {
				continue
			}
			if matchFrom(compounds, idx+1, arena, sib, state) {
				return true
			}
		}
		return false
	}
	return false
}

func prevElementSibling(arena *dom.Arena, ref dom.NodeRef) dom.NodeRef {
	parent := arena.Parent(ref)
	if parent == dom.NilRef {
		return dom.NilRef
	}
	prev := dom.NilRef
	for _, sib := range arena.Children(parent) {
		if sib == ref {
			return prev
		}
		if arena.Type(sib) == dom.NodeElement {
			prev = sib
		}
	}
	return dom.NilRef
}

func matchCompound(simples []Simple, arena *dom.Arena, ref dom.NodeRef, state MatchState) bool {
	for _, s := range simples {
		if !matchSimple(s, arena, ref, state) {
			return false
		}
	}
	return true
}

func matchSimple(s Simple, arena *dom.Arena, ref dom.NodeRef, state MatchState) bool {
	switch s.Kind {
	case SimpleUniversal:
		return true
	case SimpleTag:
		return strings.EqualFold(arena.TagName(ref), s.Value)
	case SimpleID:
		v, _ := arena.Attr(ref, "id")
		return v == s.Value
	case SimpleClass:
		class, _ := arena.Attr(ref, "class")
		for _, c := range strings.Fields(class) {
			if c == s.Value {
				return true
			}
		}
		return false
	case SimpleAttrPresent:
		_, ok := arena.Attr(ref, s.Value)
		return ok
	case SimpleAttrEquals:
		v, ok := arena.Attr(ref, s.Value)
		return ok && v == s.AttrVal
	case SimplePseudoClass:
		return matchPseudoClass(s, arena, ref, state)
	}
	return false
}

func matchPseudoClass(s Simple, arena *dom.Arena, ref dom.NodeRef, state MatchState) bool {
	switch s.Value {
	case "hover":
		return state.IsHover(ref)
	case "active":
		return state.IsActive(ref)
	case "focus":
		return state.IsFocus(ref)
	case "visited":
		return state.IsVisited(ref)
	case "link":
		_, ok := arena.Attr(ref, "href")
		return ok && !state.IsVisited(ref)
	case "first-child":
		return arena.ElementIndex(ref) == 1
	case "last-child":
		return arena.ElementIndex(ref) == arena.ElementCount(arena.Parent(ref))
	case "only-child":
		return arena.ElementIndex(ref) == 1 && arena.ElementCount(arena.Parent(ref)) == 1
	case "nth-child":
		idx := arena.ElementIndex(ref)
		return nthMatches(idx, s.NthA, s.NthB)
	}
	return true
}

// nthMatches reports whether idx (1-based) satisfies idx = a*n+b for
// some integer n >= 0.
func nthMatches(idx, a, b int) bool {
	if a == 0 {
		return idx == b
	}
	n := idx - b
	if n%a != 0 {
		return false
	}
	return n/a >= 0
}
