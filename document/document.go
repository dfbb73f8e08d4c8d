// Package document is the engine's top-level embeddable API (spec.md
// §6.2): create_from_string, render, draw, width/height, the mouse
// event entry points, and media_changed/lang_changed. It wires together
// every other package — dom, cssom, selector, style, boxtree, layout,
// paint, hittest, mediaquery — the way a host program uses them, but
// owns none of their algorithms itself.
package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/container"
	"github.com/arturoeanton/gockore/cssom"
	"github.com/arturoeanton/gockore/dom"
	"github.com/arturoeanton/gockore/hittest"
	"github.com/arturoeanton/gockore/internal/rlog"
	"github.com/arturoeanton/gockore/layout"
	"github.com/arturoeanton/gockore/mediaquery"
	"github.com/arturoeanton/gockore/paint"
	"github.com/arturoeanton/gockore/style"
)

// EngineOptions configures the defaults a Context applies before any
// stylesheet is loaded: the initial font and the host's reported DPI.
// Constructed with functional options rather than a struct literal so
// new fields don't break existing callers, the way container
// construction is configured across the pack.
type EngineOptions struct {
	DefaultFontFamily string
	DefaultFontSizePx float64

	// DPI is recorded for a host that wants to query it back; actual
	// px conversion stays the container's job (container.PtToPx), per
	// spec.md's container-owns-metrics model, so this field is not
	// consulted by layout itself.
	DPI float64

	// Strict is recorded for forward compatibility; cssom.Parse is
	// always tolerant of malformed declarations (spec.md §7's "skip
	// the broken rule, keep parsing" rule applies unconditionally), so
	// this does not yet change parsing behavior.
	Strict bool
}

// EngineOption mutates an EngineOptions being built.
type EngineOption func(*EngineOptions)

// WithDefaultFont overrides the initial font-family/font-size the root
// element inherits, before any stylesheet is applied.
func WithDefaultFont(family string, sizePx float64) EngineOption {
	return func(o *EngineOptions) { o.DefaultFontFamily, o.DefaultFontSizePx = family, sizePx }
}

// WithDPI records the host's reported DPI on the Context.
func WithDPI(dpi float64) EngineOption {
	return func(o *EngineOptions) { o.DPI = dpi }
}

// WithStrictMode records a strict-parsing preference; see EngineOptions.Strict.
func WithStrictMode(strict bool) EngineOption {
	return func(o *EngineOptions) { o.Strict = strict }
}

func defaultEngineOptions() EngineOptions {
	return EngineOptions{DefaultFontFamily: "sans-serif", DefaultFontSizePx: 16, DPI: 96}
}

// Context holds stylesheet state shareable read-only across many
// documents (spec.md §6.2): the compiled user-agent sheet, and an
// optional user stylesheet the host supplies (e.g. an accessibility
// override sheet). Building one Context and reusing it across
// documents avoids recompiling the user-agent sheet's selectors on
// every page load.
type Context struct {
	UserAgent style.CompiledSheet
	User      style.CompiledSheet
	Options   EngineOptions
}

// NewContext compiles the built-in user-agent sheet and, if userCSS is
// non-empty, a user-origin sheet alongside it. A default-font rule
// built from opts is appended to the user-agent sheet, at the same
// origin but after it in document order, so it wins cascade ties
// against the built-in "body { ... }" rule but still loses to any
// author rule (origin outranks order).
func NewContext(userCSS string, opts ...EngineOption) *Context {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx := &Context{UserAgent: style.ParseUserAgentSheet(), Options: o}
	defaults := fmt.Sprintf("html { font-family: %s; font-size: %gpx; }", o.DefaultFontFamily, o.DefaultFontSizePx)
	defaultSheet := style.Compile(cssom.Parse(defaults, cssom.OriginUserAgent))
	order := 0
	for _, r := range ctx.UserAgent.Rules {
		if r.Order >= order {
			order = r.Order + 1
		}
	}
	for _, r := range defaultSheet.Rules {
		r.Order = order
		order++
		ctx.UserAgent.Rules = append(ctx.UserAgent.Rules, r)
	}

	if strings.TrimSpace(userCSS) != "" {
		ctx.User = style.Compile(cssom.Parse(userCSS, cssom.OriginUser))
	}
	return ctx
}

// RenderMode mirrors spec.md §6.2's render(width, mode) tri-state: a
// host redrawing only part of a page after a resize can ask for just
// the fixed-position (or non-fixed) subset of boxes to re-layout.
// The layout engine here always computes the complete tree; this
// records which boxes the caller considers current.
type RenderMode int

const (
	RenderAll RenderMode = iota
	RenderFixedOnly
	RenderNoFixed
)

// Document is one parsed page: its DOM, stylesheets, and the most
// recently computed style/box/layout trees. A zero width/height
// result means render hasn't run yet.
type Document struct {
	// ID correlates this document's log lines across a host that may
	// hold several open at once; never used as a cache key or for
	// equality, only for diagnostics.
	ID uuid.UUID

	ctx       *Context
	container container.Container
	baseURL   string

	arena *dom.Arena
	root  dom.NodeRef

	authorRules []cssom.Rule
	mediaRules  []cssom.MediaRule

	state *hittest.State

	boxes  *boxtree.Tree
	layout *layout.Tree
	mode   RenderMode
}

// CreateFromString parses html and collects its stylesheet inputs
// (inline <style> text, <link rel=stylesheet> fetched synchronously
// via c.ImportCSS) — spec.md §6.2's create_from_string. ctx may be nil,
// in which case a private one-off Context is built for this document.
func CreateFromString(html string, c container.Container, ctx *Context, baseURL string) *Document {
	if ctx == nil {
		ctx = NewContext("")
	}
	arena, root := dom.ParseHTML(html)
	d := &Document{ID: uuid.New(), ctx: ctx, container: c, baseURL: baseURL, arena: arena, root: root}
	if err := d.collectStylesheets(); err != nil {
		rlog.L().Warn("stylesheet collection had non-fatal errors", zap.String("doc", d.ID.String()), zap.Error(err))
	}
	d.state = hittest.NewState()
	return d
}

// collectStylesheets walks the parsed DOM for <style> text and
// <link rel="stylesheet" href> references, per spec.md §4.1's "inline
// <style> contents and <link> URLs handed off to the container." A
// <link> the container can't resolve (spec.md §7: "@import failure —
// container returns empty — is non-fatal") contributes one error to
// the aggregate this returns rather than aborting the walk.
func (d *Document) collectStylesheets() error {
	var errs error
	d.arena.Walk(d.root, func(ref dom.NodeRef) bool {
		if d.arena.Type(ref) != dom.NodeElement {
			return true
		}
		switch d.arena.Tag(ref) {
		case dom.TagStyle:
			text := concatText(d.arena, ref)
			d.addAuthorCSS(text)
		case dom.TagLink:
			rel, _ := d.arena.Attr(ref, "rel")
			if !strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
				return true
			}
			href, ok := d.arena.Attr(ref, "href")
			if !ok || d.container == nil {
				return true
			}
			text, _ := d.container.ImportCSS(href, d.baseURL)
			if strings.TrimSpace(text) == "" {
				errs = multierr.Append(errs, fmt.Errorf("link stylesheet %q returned no text", href))
				return true
			}
			d.addAuthorCSS(text)
		}
		return true
	})
	return errs
}

func concatText(arena *dom.Arena, ref dom.NodeRef) string {
	var b strings.Builder
	for _, c := range arena.Children(ref) {
		if arena.Type(c) == dom.NodeText || arena.Type(c) == dom.NodeCData {
			b.WriteString(arena.Content(c))
		}
	}
	return b.String()
}

func (d *Document) addAuthorCSS(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	sheet := cssom.Parse(text, cssom.OriginAuthor)
	d.authorRules = append(d.authorRules, sheet.Rules...)
	d.mediaRules = append(d.mediaRules, sheet.MediaRules...)
}

// compileActiveSheet merges the context's user-agent/user sheets with
// this document's author rules plus whichever @media rules currently
// apply, reassigning a single monotonic document-order counter across
// the concatenation (cascade precedence is origin-first, so the
// counter only needs to break ties within one origin correctly).
func (d *Document) compileActiveSheet() style.CompiledSheet {
	var out style.CompiledSheet
	order := 0
	appendSheet := func(s style.CompiledSheet) {
		for _, r := range s.Rules {
			r.Order = order
			order++
			out.Rules = append(out.Rules, r)
		}
	}
	appendSheet(d.ctx.UserAgent)
	appendSheet(d.ctx.User)

	authorSheet := &cssom.Stylesheet{Rules: d.authorRules}
	appendSheet(style.Compile(authorSheet))

	if d.container != nil {
		features := d.container.GetMediaFeatures()
		for _, mr := range d.mediaRules {
			if !mediaquery.Matches(mr.Condition, features) {
				continue
			}
			appendSheet(style.Compile(&cssom.Stylesheet{Rules: mr.Rules}))
		}
	}
	return out
}

// Render resolves style, builds the render tree, and lays it out at
// maxWidth px — spec.md §6.2's render(max_width, mode).
func (d *Document) Render(maxWidthPx int, mode RenderMode) {
	d.mode = mode
	sheet := d.compileActiveSheet()
	st := style.ComputeTree(sheet, d.arena, d.root, matchState{d.state}, colorResolver(d.container))
	d.boxes = boxtree.Build(d.arena, d.root, st)
	d.layout = layout.Run(d.boxes, d.container, maxWidthPx)
}

// Draw paints the document within clip, offset by (dx, dy) — spec.md
// §6.2's draw(hdc, dx, dy, clip_rect). hdc is opaque to the core and
// passed straight through to the container's drawing calls.
func (d *Document) Draw(clip container.Rect, dx, dy int) {
	if d.layout == nil {
		return
	}
	paint.New(d.container, d.boxes, d.layout).Draw(clip, dx, dy)
}

func (d *Document) Width() int {
	if d.layout == nil {
		return 0
	}
	return d.layout.Width
}

func (d *Document) Height() int {
	if d.layout == nil {
		return 0
	}
	return d.layout.Height
}

// OnMouseOver retargets hover per spec.md §4.7/§6.2 and returns the
// dirty rects the host should redraw. client_x/client_y (viewport-
// relative coordinates, as distinct from document-relative x/y after
// scrolling) are the host's concern; the core only needs document
// coordinates to hit-test against the layout tree.
func (d *Document) OnMouseOver(x, y int) []hittest.Rect {
	if d.layout == nil {
		return nil
	}
	return d.state.OnMouseOver(d.boxes, d.layout, x, y)
}

func (d *Document) OnLButtonDown(x, y int) []hittest.Rect {
	if d.layout == nil {
		return nil
	}
	return d.state.OnLButtonDown(d.boxes, d.layout, x, y)
}

func (d *Document) OnLButtonUp() []hittest.Rect {
	if d.layout == nil {
		return nil
	}
	return d.state.OnLButtonUp(d.boxes, d.layout)
}

func (d *Document) OnMouseLeave() []hittest.Rect {
	if d.layout == nil {
		return nil
	}
	return d.state.OnMouseLeave(d.boxes, d.layout)
}

// MediaChanged re-resolves style and rebuilds the render/layout trees
// after the host reports a media-feature change (e.g. a window
// resize changing an @media breakpoint) — spec.md §3.5's "partially
// rebuilt when the host calls media_changed."
func (d *Document) MediaChanged() {
	if d.layout == nil {
		return
	}
	d.Render(d.layout.Width, d.mode)
}

// LangChanged re-resolves style after the document language changes,
// since :lang() selectors depend on it.
func (d *Document) LangChanged() {
	d.MediaChanged()
}

func colorResolver(c container.Container) func(string) (string, bool) {
	if c == nil {
		return func(string) (string, bool) { return "", false }
	}
	return c.ResolveColor
}

// matchState adapts hittest.State to selector.MatchState; defined here
// rather than on hittest.State directly so hittest doesn't need to
// import selector just for this one bridge.
type matchState struct{ s *hittest.State }

func (m matchState) IsHover(ref dom.NodeRef) bool   { return m.s.IsHover(ref) }
func (m matchState) IsActive(ref dom.NodeRef) bool  { return m.s.IsActive(ref) }
func (m matchState) IsFocus(ref dom.NodeRef) bool   { return m.s.IsFocus(ref) }
func (m matchState) IsVisited(ref dom.NodeRef) bool { return m.s.IsVisited(ref) }
