package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// StaticDocument is the markup-parse adapter. It applies the standard HTML5
// recovery rules, so malformed markup still yields a usable tree.
type StaticDocument struct {
	root    *Node
	title   string
	doctype bool
	all     []*Node
}

var _ Document = (*StaticDocument)(nil)

// ParseStatic builds a StaticDocument from raw markup. It only fails when the
// reader fails; malformed HTML is recovered, never rejected.
func ParseStatic(markup string) (*StaticDocument, error) {
	h, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	d := &StaticDocument{}
	d.build(h, nil)
	return d, nil
}

func (d *StaticDocument) build(h *html.Node, parent *Node) {
	switch h.Type {
	case html.DoctypeNode:
		d.doctype = true
	case html.ElementNode:
		n := &Node{
			Tag:    strings.ToLower(h.Data),
			Attrs:  make(map[string]string, len(h.Attr)),
			Parent: parent,
			raw:    h,
		}
		for _, a := range h.Attr {
			n.Attrs[strings.ToLower(a.Key)] = a.Val
		}
		if parent == nil {
			if d.root == nil {
				d.root = n
			}
		} else {
			parent.Children = append(parent.Children, n)
		}
		d.all = append(d.all, n)
		if n.Tag == "title" && d.title == "" {
			d.title = n.Text()
		}
		parent = n
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		d.build(c, parent)
	}
}

// MarkDoctype overrides doctype presence. The rendered pass serializes only
// the document element and reports the doctype separately.
func (d *StaticDocument) MarkDoctype(present bool) { d.doctype = present }

func (d *StaticDocument) Root() *Node { return d.root }

func (d *StaticDocument) Title() string { return strings.TrimSpace(d.title) }

func (d *StaticDocument) HasDoctype() bool { return d.doctype }

func (d *StaticDocument) Elements(tags ...string) []*Node {
	if len(tags) == 0 {
		out := make([]*Node, len(d.all))
		copy(out, d.all)
		return out
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}
	var out []*Node
	for _, n := range d.all {
		if want[n.Tag] {
			out = append(out, n)
		}
	}
	return out
}

func (d *StaticDocument) Walk(fn func(*Node)) {
	for _, n := range d.all {
		fn(n)
	}
}

// RenderedDocument wraps a parsed tree with computed styles captured from a
// browser pass. Styles are joined to elements by document-order index, which
// is how the extraction script enumerates them.
type RenderedDocument struct {
	*StaticDocument
	styles map[*Node]Style
}

var _ StyleComputingDocument = (*RenderedDocument)(nil)

// NewRendered attaches styles to a parsed document. styles[i] belongs to the
// i-th element in document order; a shorter slice leaves the remainder
// without style, which detectors treat as skip.
func NewRendered(doc *StaticDocument, styles []Style) *RenderedDocument {
	m := make(map[*Node]Style, len(styles))
	for i, n := range doc.all {
		if i >= len(styles) {
			break
		}
		m[n] = styles[i]
	}
	return &RenderedDocument{StaticDocument: doc, styles: m}
}

// NewRenderedWithMap attaches styles keyed by node, for tests and callers
// that compute styles selectively.
func NewRenderedWithMap(doc *StaticDocument, styles map[*Node]Style) *RenderedDocument {
	if styles == nil {
		styles = map[*Node]Style{}
	}
	return &RenderedDocument{StaticDocument: doc, styles: styles}
}

func (d *RenderedDocument) Style(n *Node) (Style, bool) {
	st, ok := d.styles[n]
	return st, ok
}
