package dom

import "strings"

// impliedDocumentTags are synthesized if the source never opens them
// explicitly, matching spec.md §4.1's "implicit <html>/<head>/<body>"
// rule — browsers tolerate fragments that start straight at <p> or
// plain text.
var impliedDocumentTags = struct{ html, head, body TagID }{TagHTML, TagHead, TagBody}

// builder walks a token stream and constructs an Arena tree. It keeps
// an explicit open-element stack rather than recursion, since recovery
// rules (auto-close, foster parenting) need to inspect and mutate
// arbitrary stack depths, not just the immediate parent.
type builder struct {
	arena *Arena
	tok   *Tokenizer
	stack []NodeRef // open elements, root-to-innermost
	root  NodeRef

	headSeen bool
	bodySeen bool
}

// ParseHTML tokenizes and tree-constructs src into a fresh Arena,
// returning the root <html> element. It never fails: truncated or
// malformed markup degrades to a best-effort tree (spec.md §4.1, §7).
func ParseHTML(src string) (*Arena, NodeRef) {
	a := NewArena()
	b := &builder{arena: a, tok: NewTokenizer(src)}
	b.root = a.NewElement(TagHTML)
	b.stack = []NodeRef{b.root}

	for {
		t := b.tok.Next()
		if t.Kind == TokenEOF {
			break
		}
		b.handle(t)
	}
	return a, b.root
}

func (b *builder) top() NodeRef { return b.stack[len(b.stack)-1] }

func (b *builder) push(ref NodeRef) { b.stack = append(b.stack, ref) }

func (b *builder) pop() { b.stack = b.stack[:len(b.stack)-1] }

// popTo pops the stack until (and including, if found) an element with
// the given tag; if tag is never found, the stack is left unchanged.
func (b *builder) popTo(tag TagID) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.arena.Tag(b.stack[i]) == tag {
			b.stack = b.stack[:i]
			return true
		}
	}
	return false
}

func (b *builder) hasOpenAncestor(tag TagID) bool {
	for _, ref := range b.stack {
		if b.arena.Tag(ref) == tag {
			return true
		}
	}
	return false
}

func (b *builder) ensureHead() {
	if b.headSeen {
		return
	}
	b.headSeen = true
	head := b.arena.NewElement(TagHead)
	b.arena.AppendChild(b.root, head)
}

// ensureBody opens <body> implicitly the first time element content
// that belongs in the body is seen, closing an implicitly-open <head>
// first if needed.
func (b *builder) ensureBody() {
	if b.bodySeen {
		return
	}
	b.bodySeen = true
	body := b.arena.NewElement(TagBody)
	b.arena.AppendChild(b.root, body)
	// Drop any stack entries above <html> (i.e. an implicit <head>
	// never gets pushed onto the open-element stack, so nothing to
	// pop here) and make <body> current.
	b.stack = []NodeRef{b.root}
	b.push(body)
}

func (b *builder) handle(t Token) {
	switch t.Kind {
	case TokenDoctype:
		return
	case TokenComment:
		b.arena.AppendChild(b.top(), b.arena.NewComment(t.Text))
	case TokenText:
		b.handleText(t.Text)
	case TokenStartTag:
		b.handleStartTag(t)
	case TokenEndTag:
		b.handleEndTag(t)
	}
}

func (b *builder) handleText(text string) {
	if strings.TrimSpace(text) == "" {
		if text == "" {
			return
		}
		b.arena.AppendChild(b.top(), b.arena.NewSpace(text))
		return
	}
	if !b.bodySeen && !b.headInProgress() {
		b.ensureBody()
	}
	b.arena.AppendChild(b.top(), b.arena.NewText(text))
}

// headInProgress reports whether <head>-only content (title, meta,
// link, style, script before body) is currently being accumulated —
// used to avoid opening <body> for text inside <head>. That holds
// before any <head> or <body> has been seen, and while a <head> is on
// the open-element stack.
func (b *builder) headInProgress() bool {
	return !b.bodySeen && (!b.headSeen || b.hasOpenAncestor(TagHead))
}

func (b *builder) handleStartTag(t Token) {
	tag := InternTag(t.Name)

	switch tag {
	case TagHTML:
		// Redundant explicit <html>: merge attributes onto the
		// synthesized root instead of creating a nested one.
		for _, at := range t.Attrs {
			b.arena.SetAttr(b.root, at.Name, at.Value)
		}
		return
	case TagHead:
		if b.bodySeen {
			return
		}
		b.headSeen = true
		head := b.arena.NewElement(TagHead)
		for _, at := range t.Attrs {
			b.arena.SetAttr(head, at.Name, at.Value)
		}
		b.arena.AppendChild(b.root, head)
		b.stack = []NodeRef{b.root, head}
		return
	case TagBody:
		if b.bodySeen {
			return
		}
		b.bodySeen = true
		body := b.arena.NewElement(TagBody)
		for _, at := range t.Attrs {
			b.arena.SetAttr(body, at.Name, at.Value)
		}
		b.arena.AppendChild(b.root, body)
		b.stack = []NodeRef{b.root, body}
		return
	}

	// Any other element belongs in the body (head-only tags handled
	// below before body is forced open).
	headOnly := tag == TagTitle || tag == TagMeta || tag == TagLink ||
		(tag == TagStyle && !b.bodySeen) || (tag == TagScript && b.headInProgress())
	if headOnly {
		b.ensureHead()
		if b.stackTop() != TagHead {
			b.stack = append([]NodeRef{b.root}, b.findChild(b.root, TagHead))
		}
	} else if !b.bodySeen {
		b.ensureBody()
	}

	b.autoClose(tag)
	fosterTable := b.fosterIfNeeded(tag)

	el := b.arena.NewElement(tag)
	for _, at := range t.Attrs {
		b.arena.SetAttr(el, at.Name, at.Value)
	}
	if fosterTable != NilRef {
		b.arena.InsertBefore(b.arena.Parent(fosterTable), el, fosterTable)
	} else {
		b.arena.AppendChild(b.top(), el)
	}

	if IsVoid(tag) || t.SelfClosing {
		return
	}
	if IsRawText(tag) {
		b.tok.EnterRawText(t.Name)
		raw := b.tok.Next()
		if raw.Kind == TokenText && raw.Text != "" {
			b.arena.AppendChild(el, b.arena.NewText(raw.Text))
		}
		// The matching end tag (if any) is consumed by handleEndTag
		// when the tokenizer resumes in the data state and reports it.
		return
	}
	b.push(el)
}

func (b *builder) stackTop() TagID {
	if len(b.stack) == 0 {
		return TagUnknown
	}
	return b.arena.Tag(b.top())
}

func (b *builder) findChild(parent NodeRef, tag TagID) NodeRef {
	for _, c := range b.arena.Children(parent) {
		if b.arena.Type(c) == NodeElement && b.arena.Tag(c) == tag {
			return c
		}
	}
	return NilRef
}

// autoClose implements spec.md §4.1's implicit close rules: opening a
// block tag closes an open <p>; opening <li>/<dd>/<dt>/<tr>/<td>/<th>
// closes a sibling of the same kind still open above it.
func (b *builder) autoClose(tag TagID) {
	if ClosesP(tag) && b.hasOpenAncestor(TagP) {
		b.popTo(TagP)
	}
	switch tag {
	case TagLI:
		b.closeOpenSibling(TagLI)
	case TagDT, TagDD:
		b.closeOpenSibling(TagDT, TagDD)
	case TagTR:
		b.closeOpenSibling(TagTR)
	case TagTD, TagTH:
		b.closeOpenSibling(TagTD, TagTH)
	}
}

// closeOpenSibling pops the stack if its top is one of kinds. Only the
// top is examined, so e.g. a <li> inside a nested <ul> never closes an
// outer <li>; a matching element deeper in the stack is left open.
func (b *builder) closeOpenSibling(kinds ...TagID) {
	if len(b.stack) == 0 {
		return
	}
	top := b.arena.Tag(b.top())
	for _, k := range kinds {
		if top == k {
			b.pop()
			return
		}
	}
}

// fosterIfNeeded returns the open <table> that disallowed content must
// be inserted before (in the table's parent) rather than inside, per
// spec.md §4.1's table fostering rule, or NilRef when no fostering
// applies. It only fires when the immediate insertion point is a
// <table> itself (direct non-table-scoped children), the common case
// litehtml and every HTML5 parser handle; deeply nested misplacement
// is left to degrade gracefully rather than fully replicating the
// HTML5 foster-parent algorithm.
func (b *builder) fosterIfNeeded(tag TagID) NodeRef {
	if len(b.stack) == 0 {
		return NilRef
	}
	cur := b.top()
	if b.arena.Tag(cur) != TagTable || IsTableScoped(tag) {
		return NilRef
	}
	if b.arena.Parent(cur) == NilRef {
		return NilRef
	}
	return cur
}

func (b *builder) handleEndTag(t Token) {
	tag := InternTag(t.Name)
	switch tag {
	case TagHTML:
		return
	case TagHead:
		if b.stackTop() == TagHead {
			b.pop()
		}
		return
	case TagBody:
		return
	}
	b.popTo(tag)
	if len(b.stack) == 0 {
		// Never let the stack go fully empty; re-anchor at root.
		b.stack = []NodeRef{b.root}
	}
}
