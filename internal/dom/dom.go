// Package dom wraps a parsed HTML tree behind a uniform query and traversal
// interface. The static adapter parses markup only; the rendered adapter
// (built from a browser pass) additionally carries computed style, exposed
// through the StyleComputingDocument capability.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Node is one element in the document tree.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Parent   *Node
	Children []*Node

	raw *html.Node
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrValue returns the attribute value or "" when absent.
func (n *Node) AttrValue(name string) string {
	return n.Attrs[name]
}

// HasAttr reports attribute presence regardless of value.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Text returns the whitespace-normalized text content of the element and all
// descendants.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(h *html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
			b.WriteString(" ")
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n.raw != nil {
		walk(n.raw)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// OwnText returns the whitespace-normalized text belonging directly to the
// element, excluding descendant elements. Contrast checks use this to find
// elements that actually paint text.
func (n *Node) OwnText() string {
	if n.raw == nil {
		return ""
	}
	var b strings.Builder
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Snippet serializes the element back to HTML.
func (n *Node) Snippet() string {
	if n.raw == nil {
		return "<" + n.Tag + ">"
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n.raw); err != nil {
		return "<" + n.Tag + ">"
	}
	return buf.String()
}

// Closest walks up the ancestor chain and returns the first node matching the
// predicate, or nil.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if match(p) {
			return p
		}
	}
	return nil
}

// Descendants returns all element descendants in document order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(nd *Node) {
		for _, c := range nd.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Locator builds a CSS-like selector chain for re-locating the element in a
// live document. An id anchors the chain; otherwise each segment carries an
// nth-of-type qualifier when the tag is ambiguous among its siblings.
func (n *Node) Locator() string {
	var parts []string
	for cur := n; cur != nil && cur.Tag != ""; cur = cur.Parent {
		if id := cur.AttrValue("id"); id != "" {
			parts = append(parts, cur.Tag+"#"+id)
			break
		}
		seg := cur.Tag
		if cls := firstClass(cur.AttrValue("class")); cls != "" {
			seg += "." + cls
		}
		if idx, ambiguous := nthOfType(cur); ambiguous {
			seg += fmt.Sprintf(":nth-of-type(%d)", idx)
		}
		parts = append(parts, seg)
		if cur.Tag == "html" {
			break
		}
	}
	// reverse into root-first order
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func firstClass(class string) string {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func nthOfType(n *Node) (int, bool) {
	if n.Parent == nil {
		return 1, false
	}
	idx, total := 0, 0
	for _, sib := range n.Parent.Children {
		if sib.Tag == n.Tag {
			total++
			if sib == n {
				idx = total
			}
		}
	}
	return idx, total > 1
}

// Document is the uniform query surface over one parsed page.
type Document interface {
	// Root returns the document's root element (usually html), or nil for an
	// empty document.
	Root() *Node
	// Title returns the text of the first title element, "" when absent.
	Title() string
	// HasDoctype reports whether the markup carried a doctype declaration.
	HasDoctype() bool
	// Elements returns all elements matching any of the given tag names in
	// document order; with no arguments it returns every element.
	Elements(tags ...string) []*Node
	// Walk visits every element in document order.
	Walk(fn func(*Node))
}

// Style is the computed style subset the rendered pass extracts per element.
type Style struct {
	Color      Color
	Background Color
	FontSizePx float64
	FontWeight int
	Position   string
	HasOnClick bool
}

// StyleComputingDocument is the capability interface for documents that carry
// computed style. The static adapter deliberately does not implement it, so
// style-dependent detectors cannot be handed a static document.
type StyleComputingDocument interface {
	Document
	Style(n *Node) (Style, bool)
}

// ResolveBackground walks up from the element until a non-transparent
// background is found, defaulting to white.
func ResolveBackground(n *Node, doc StyleComputingDocument) Color {
	for cur := n; cur != nil; cur = cur.Parent {
		if st, ok := doc.Style(cur); ok && !st.Background.Transparent() {
			return st.Background
		}
	}
	return White
}
