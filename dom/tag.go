// Package dom implements the HTML tokenizer, tree-construction rules,
// and the arena-backed DOM tree described in spec.md §3.4 and §4.1.
package dom

import "sync"

// TagID is a tag name interned to an integer, per spec.md §9's
// "compile-time perfect-hash tables for ... tag ... ids; string -> id
// happens once at parse time and every subsequent comparison is an
// integer compare." Interning is process-wide (tag vocabularies repeat
// across documents) and guarded by a mutex since the host may parse
// documents on different threads even though each individual document
// is single-threaded (spec.md §5).
type TagID int32

// TagUnknown is never assigned to a tag name by InternTag; the tree
// builder's stackTop returns it when the open-element stack is empty.
const TagUnknown TagID = 0

// Fixed ids for tags the engine gives special tree-construction or
// default-style treatment. Anything else still gets a stable TagID via
// InternTag, just not one of these names.
const (
	TagHTML TagID = iota + 1
	TagHead
	TagBody
	TagTitle
	TagScript
	TagStyle
	TagTemplate
	TagP
	TagLI
	TagDT
	TagDD
	TagTR
	TagTD
	TagTH
	TagTHead
	TagTBody
	TagTFoot
	TagTable
	TagCaption
	TagColgroup
	TagCol
	TagOption
	TagOptgroup
	TagSelect
	TagBR
	TagWBR
	TagIMG
	TagInput
	TagHR
	TagA
	TagDiv
	TagSpan
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagUL
	TagOL
	TagForm
	TagLabel
	TagButton
	TagTextarea
	TagLink
	TagMeta
	TagSVG
	TagNoscript
	TagPre
	TagB
	TagStrong
	TagI
	TagEm
	TagFirstDynamic // sentinel: InternTag starts allocating here
)

var (
	internMu   sync.Mutex
	internNext = TagFirstDynamic
	nameToID   = map[string]TagID{
		"html": TagHTML, "head": TagHead, "body": TagBody, "title": TagTitle,
		"script": TagScript, "style": TagStyle, "template": TagTemplate,
		"p": TagP, "li": TagLI, "dt": TagDT, "dd": TagDD,
		"tr": TagTR, "td": TagTD, "th": TagTH, "thead": TagTHead,
		"tbody": TagTBody, "tfoot": TagTFoot, "table": TagTable,
		"caption": TagCaption, "colgroup": TagColgroup, "col": TagCol,
		"option": TagOption, "optgroup": TagOptgroup, "select": TagSelect,
		"br": TagBR, "wbr": TagWBR, "img": TagIMG, "input": TagInput,
		"hr": TagHR, "a": TagA, "div": TagDiv, "span": TagSpan,
		"h1": TagH1, "h2": TagH2, "h3": TagH3, "h4": TagH4, "h5": TagH5, "h6": TagH6,
		"ul": TagUL, "ol": TagOL, "form": TagForm, "label": TagLabel,
		"button": TagButton, "textarea": TagTextarea, "link": TagLink,
		"meta": TagMeta, "svg": TagSVG, "noscript": TagNoscript, "pre": TagPre,
		"b": TagB, "strong": TagStrong, "i": TagI, "em": TagEm,
	}
	idToName = make(map[TagID]string, len(nameToID))
)

func init() {
	for name, id := range nameToID {
		idToName[id] = name
	}
}

// InternTag interns a lowercase tag name to a stable TagID, allocating a
// fresh id for names not already known.
func InternTag(name string) TagID {
	internMu.Lock()
	defer internMu.Unlock()
	if id, ok := nameToID[name]; ok {
		return id
	}
	id := internNext
	internNext++
	nameToID[name] = id
	idToName[id] = name
	return id
}

// TagName returns the interned name for id, or "" if never interned.
func TagName(id TagID) string {
	internMu.Lock()
	defer internMu.Unlock()
	return idToName[id]
}

var voidElements = map[TagID]bool{
	TagBR: true, TagWBR: true, TagIMG: true, TagInput: true, TagHR: true,
	TagMeta: true, TagLink: true, TagCol: true,
}

// IsVoid reports whether elements of this tag never have children
// (spec.md §4.1's void elements list).
func IsVoid(id TagID) bool { return voidElements[id] }

var rawTextTags = map[TagID]bool{TagScript: true, TagStyle: true}

// IsRawText reports whether the tag's body is consumed as raw text
// (its children form a single text node), per spec.md §4.1.
func IsRawText(id TagID) bool { return rawTextTags[id] }

// tableScopeTags are allowed directly inside <table> without triggering
// foster parenting.
var tableScopeTags = map[TagID]bool{
	TagCaption: true, TagColgroup: true, TagCol: true, TagTHead: true,
	TagTBody: true, TagTFoot: true, TagTR: true, TagTD: true, TagTH: true,
	TagTable: true, TagScript: true, TagStyle: true, TagTemplate: true,
}

// IsTableScoped reports whether tag is one of the table-descendant
// tags that may appear directly under <table>; anything else is
// fostered out per spec.md §4.1.
func IsTableScoped(id TagID) bool { return tableScopeTags[id] }

// blockAutoCloseTags are the tags whose opening auto-closes an open <p>.
var blockAutoCloseTags = map[TagID]bool{}

func init() {
	for _, name := range []string{
		"address", "article", "aside", "blockquote", "details", "div",
		"dl", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "main",
		"menu", "nav", "ol", "p", "pre", "section", "table", "ul",
	} {
		blockAutoCloseTags[InternTag(name)] = true
	}
}

// ClosesP reports whether opening a tag of id auto-closes an open <p>.
func ClosesP(id TagID) bool { return blockAutoCloseTags[id] }
