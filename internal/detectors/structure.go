package detectors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a11yscan/a11yscan/internal/dom"
	"github.com/a11yscan/a11yscan/internal/types"
)

// DuplicateIDs flags id values appearing on more than one element. Policy:
// one finding per duplicated id value; the occurrence count goes into the
// message and each occurrence's locator into auxiliary data.
func DuplicateIDs(doc dom.Document, pageURL string) []types.Finding {
	byID := map[string][]*dom.Node{}
	var order []string
	doc.Walk(func(n *dom.Node) {
		id := n.AttrValue("id")
		if id == "" {
			return
		}
		if len(byID[id]) == 0 {
			order = append(order, id)
		}
		byID[id] = append(byID[id], n)
	})

	var out []types.Finding
	for _, id := range order {
		nodes := byID[id]
		if len(nodes) < 2 {
			continue
		}
		aux := map[string]string{"occurrences": strconv.Itoa(len(nodes))}
		for i, n := range nodes {
			aux["locator."+strconv.Itoa(i+1)] = n.Locator()
		}
		f := finding("duplicate-id", pageURL, nodes[0], types.ImpactSerious,
			fmt.Sprintf("id %q appears on %d elements", id, len(nodes)),
			"ids must be unique within a document; rename the duplicates")
		f.Aux = aux
		out = append(out, f)
	}
	return out
}

// MissingLang flags a root element without a lang attribute.
func MissingLang(doc dom.Document, pageURL string) []types.Finding {
	root := doc.Root()
	if root == nil {
		return nil
	}
	if strings.TrimSpace(root.AttrValue("lang")) != "" {
		return nil
	}
	return []types.Finding{finding("html-lang", pageURL, root, types.ImpactSerious,
		"document root has no lang attribute",
		"add lang=\"...\" to the html element so screen readers pick the right voice")}
}

// MissingTitle flags documents without a non-empty title.
func MissingTitle(doc dom.Document, pageURL string) []types.Finding {
	if doc.Title() != "" {
		return nil
	}
	return []types.Finding{documentFinding("document-title", pageURL, types.ImpactSerious,
		"document has no title",
		"add a descriptive <title> element")}
}

// MissingDoctype flags documents served without a doctype declaration.
func MissingDoctype(doc dom.Document, pageURL string) []types.Finding {
	if doc.HasDoctype() {
		return nil
	}
	return []types.Finding{documentFinding("doctype", pageURL, types.ImpactMinor,
		"document has no doctype declaration",
		"start the document with <!DOCTYPE html> to avoid quirks-mode rendering")}
}
