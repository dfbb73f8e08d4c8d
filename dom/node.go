package dom

// NodeType is one of the five DOM node kinds spec.md §3.4 names.
type NodeType int

const (
	NodeElement NodeType = iota
	NodeText
	NodeComment
	NodeSpace // pure inter-tag whitespace, kept distinct from NodeText so
	// layout can collapse it without re-scanning content
	NodeCData
)

// Attr is one attribute; attributes are kept in an insertion-ordered
// slice rather than a map (spec.md §3.4: "an insertion-ordered map of
// attribute name -> value"), since element attribute counts are small
// and a linear scan is both simpler and cache-friendlier than a map.
type Attr struct {
	Name  string // already lowercased
	Value string // case preserved
}

// NodeRef indexes into an Arena. NilRef (-1, not the zero value) means
// "no node" — used for the parent of the root and for absent references
// generally; it is never a valid index into Nodes.
type NodeRef int32

// NilRef is the sentinel "no node" reference.
const NilRef NodeRef = -1

type node struct {
	Type     NodeType
	Tag      TagID  // valid for NodeElement
	Content  string // valid for NodeText/NodeComment/NodeCData/NodeSpace
	Attrs    []Attr // valid for NodeElement
	Parent   NodeRef
	Children []NodeRef
}

// Arena owns every node in one document's DOM tree. References are
// 32-bit indices, never pointers, so a subtree can be "freed" by a
// single sweep (RemoveChild marks the subtree unreachable; the slice
// storage itself is reclaimed when the whole Arena is dropped) and
// cannot form a retained cycle the way shared-pointer parent/child
// links can (spec.md §9).
type Arena struct {
	nodes []node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]node, 0, 256)}
}

func (a *Arena) alloc(n node) NodeRef {
	a.nodes = append(a.nodes, n)
	return NodeRef(len(a.nodes) - 1)
}

// NewElement allocates a new, parentless element node for tag.
func (a *Arena) NewElement(tag TagID) NodeRef {
	return a.alloc(node{Type: NodeElement, Tag: tag, Parent: NilRef})
}

// NewText allocates a new, parentless text node.
func (a *Arena) NewText(content string) NodeRef {
	return a.alloc(node{Type: NodeText, Content: content, Parent: NilRef})
}

// NewComment allocates a new, parentless comment node.
func (a *Arena) NewComment(content string) NodeRef {
	return a.alloc(node{Type: NodeComment, Content: content, Parent: NilRef})
}

// NewSpace allocates a new, parentless whitespace-only text node.
func (a *Arena) NewSpace(content string) NodeRef {
	return a.alloc(node{Type: NodeSpace, Content: content, Parent: NilRef})
}

// NewCData allocates a new, parentless CDATA node.
func (a *Arena) NewCData(content string) NodeRef {
	return a.alloc(node{Type: NodeCData, Content: content, Parent: NilRef})
}

// AppendChild attaches child as the last child of parent. child must
// not already have a parent.
func (a *Arena) AppendChild(parent, child NodeRef) {
	a.nodes[child].Parent = parent
	a.nodes[parent].Children = append(a.nodes[parent].Children, child)
}

// InsertBefore inserts newChild into parent's children list immediately
// before anchor (used by the HTML parser's table foster-parenting rule,
// spec.md §4.1).
func (a *Arena) InsertBefore(parent, newChild, anchor NodeRef) {
	a.nodes[newChild].Parent = parent
	kids := a.nodes[parent].Children
	idx := len(kids)
	for i, k := range kids {
		if k == anchor {
			idx = i
			break
		}
	}
	kids = append(kids, NilRef)
	copy(kids[idx+1:], kids[idx:])
	kids[idx] = newChild
	a.nodes[parent].Children = kids
}

// RemoveChild detaches child from parent. The child's own subtree
// still lives in the arena (array slots are only reclaimed when the
// whole Arena is discarded) but becomes unreachable from the root,
// which is the arena model's equivalent of "removal destroys the
// subtree" (spec.md §3.4): nothing can observe it through traversal.
func (a *Arena) RemoveChild(parent, child NodeRef) {
	kids := a.nodes[parent].Children
	for i, k := range kids {
		if k == child {
			a.nodes[parent].Children = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	a.nodes[child].Parent = NilRef
}

// SetAttr sets (or replaces) an attribute, preserving insertion order
// for new attributes.
func (a *Arena) SetAttr(ref NodeRef, name, value string) {
	n := &a.nodes[ref]
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// --- read-only accessors, all O(1) except attribute lookup (O(attrs)) ---

func (a *Arena) Type(ref NodeRef) NodeType       { return a.nodes[ref].Type }
func (a *Arena) Tag(ref NodeRef) TagID           { return a.nodes[ref].Tag }
func (a *Arena) TagName(ref NodeRef) string      { return TagName(a.nodes[ref].Tag) }
func (a *Arena) Content(ref NodeRef) string      { return a.nodes[ref].Content }
func (a *Arena) Parent(ref NodeRef) NodeRef      { return a.nodes[ref].Parent }
func (a *Arena) Children(ref NodeRef) []NodeRef  { return a.nodes[ref].Children }
func (a *Arena) Attrs(ref NodeRef) []Attr        { return a.nodes[ref].Attrs }
func (a *Arena) Len() int                        { return len(a.nodes) }

// Attr returns an attribute value, or "" with ok=false if absent.
func (a *Arena) Attr(ref NodeRef, name string) (string, bool) {
	for _, at := range a.nodes[ref].Attrs {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def if the attribute is absent.
func (a *Arena) AttrOr(ref NodeRef, name, def string) string {
	if v, ok := a.Attr(ref, name); ok {
		return v
	}
	return def
}

// SetText replaces a text/comment/cdata node's content in place —
// layout's single-write-per-pass discipline (spec.md §9) never needs
// this; it exists for hosts editing the parsed DOM before first render.
func (a *Arena) SetText(ref NodeRef, content string) {
	a.nodes[ref].Content = content
}

// ElementIndex returns the 1-based index of ref among its parent's
// element-typed children, or 0 if ref has no parent or is not an
// element. Used by :nth-child and related pseudo-classes.
func (a *Arena) ElementIndex(ref NodeRef) int {
	parent := a.Parent(ref)
	if parent == NilRef {
		return 0
	}
	idx := 0
	for _, sib := range a.Children(parent) {
		if a.Type(sib) != NodeElement {
			continue
		}
		idx++
		if sib == ref {
			return idx
		}
	}
	return 0
}

// ElementCount returns the number of element-typed children of ref.
func (a *Arena) ElementCount(ref NodeRef) int {
	n := 0
	for _, c := range a.Children(ref) {
		if a.Type(c) == NodeElement {
			n++
		}
	}
	return n
}

// Walk performs a pre-order traversal of the subtree rooted at ref,
// calling visit(ref) for ref and every descendant in document order.
// Stopping early: visit returns false to skip descending into ref's
// children (siblings are still visited).
func (a *Arena) Walk(ref NodeRef, visit func(NodeRef) bool) {
	if !visit(ref) {
		return
	}
	for _, c := range a.Children(ref) {
		a.Walk(c, visit)
	}
}
