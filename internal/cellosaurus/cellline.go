package cellosaurus

import (
	"github.com/antchfx/xmlquery"
)

// CellLine is one cell-line record inside a Document. It is a thin view
// over the record's subtree; the underlying nodes stay owned by the
// Document and are never copied or mutated.
type CellLine struct {
	node *xmlquery.Node
}

// NewCellLine wraps a cell-line node. The node must belong to a loaded
// Document.
func NewCellLine(node *xmlquery.Node) *CellLine {
	return &CellLine{node: node}
}

// Node returns the underlying DOM node.
func (c *CellLine) Node() *xmlquery.Node {
	return c.node
}

// Category returns the cell-line category attribute.
// The second return value is false when no category is recorded.
func (c *CellLine) Category() (string, bool) {
	return c.attr("category")
}

// Sex returns the sex attribute. Absence is normal data, reported as
// ok=false, never as an error.
func (c *CellLine) Sex() (string, bool) {
	return c.attr("sex")
}

// Accession returns the record's primary accession, or "" if none is
// recorded.
func (c *CellLine) Accession() string {
	accs := c.Accessions("primary")
	if len(accs) == 0 {
		return ""
	}
	return accs[0]
}

// Accessions returns the record's accession codes in document order,
// optionally restricted to the given type tags (primary, secondary).
// Multiple tags combine with OR.
func (c *CellLine) Accessions(types ...string) []string {
	return c.taggedText("accession-list/accession", "type", types)
}

// Names returns the record's names in document order, optionally
// restricted to the given type tags (identifier, synonym).
func (c *CellLine) Names(types ...string) []string {
	return c.taggedText("name-list/name", "type", types)
}

// Name returns the record's identifier name, or "" if none is recorded.
func (c *CellLine) Name() string {
	names := c.Names("identifier")
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Comments returns comment text in document order, optionally restricted
// to the given category tags.
func (c *CellLine) Comments(categories ...string) []string {
	return c.taggedText("comment-list/comment", "category", categories)
}

// CommentEntry is one comment together with its category tag.
type CommentEntry struct {
	Category string
	Text     string
}

// CommentEntries returns the record's comments with their category
// tags, in document order.
func (c *CellLine) CommentEntries() []CommentEntry {
	var out []CommentEntry
	for _, n := range xmlquery.Find(c.node, "comment-list/comment") {
		out = append(out, CommentEntry{
			Category: n.SelectAttr("category"),
			Text:     n.InnerText(),
		})
	}
	return out
}

// WebPages returns the record's web page URLs in document order.
func (c *CellLine) WebPages() []string {
	return c.taggedText("web-page-list/url", "", nil)
}

// References returns the record's cross-reference identifiers. These are
// read from the resource-internal-ref attribute, not element text.
func (c *CellLine) References() []string {
	return c.childAttrs("reference-list/reference", "resource-internal-ref")
}

// Species returns the record's species names in document order.
func (c *CellLine) Species() []string {
	return c.taggedText("species-list/cv-term", "", nil)
}

// SpeciesAccessions returns the taxonomy accession codes of the record's
// species entries.
func (c *CellLine) SpeciesAccessions() []string {
	return c.childAttrs("species-list/cv-term", "accession")
}

// Diseases returns the record's disease names in document order.
func (c *CellLine) Diseases() []string {
	return c.taggedText("disease-list/cv-term", "", nil)
}

// DiseaseAccessions returns the terminology accession codes of the
// record's disease entries.
func (c *CellLine) DiseaseAccessions() []string {
	return c.childAttrs("disease-list/cv-term", "accession")
}

// DerivedFrom returns the names of the records this cell line was
// derived from.
func (c *CellLine) DerivedFrom() []string {
	return c.taggedText("derived-from/cv-term", "", nil)
}

// DerivedFromAccessions returns the accession codes of the records this
// cell line was derived from.
func (c *CellLine) DerivedFromAccessions() []string {
	return c.childAttrs("derived-from/cv-term", "accession")
}

// SameOriginAs returns the names of records sharing this cell line's
// origin.
func (c *CellLine) SameOriginAs() []string {
	return c.taggedText("same-origin-as/cv-term", "", nil)
}

// SameOriginAsAccessions returns the accession codes of records sharing
// this cell line's origin.
func (c *CellLine) SameOriginAsAccessions() []string {
	return c.childAttrs("same-origin-as/cv-term", "accession")
}

// attr reads an attribute off the cell-line element itself, reporting
// presence explicitly so absent attributes are never conflated with
// empty values.
func (c *CellLine) attr(name string) (string, bool) {
	for _, a := range c.node.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// taggedText collects the text of the sub-elements at path, keeping only
// those whose tagAttr matches any of the given tags. An empty tag list
// keeps everything.
func (c *CellLine) taggedText(path, tagAttr string, tags []string) []string {
	var out []string
	for _, n := range xmlquery.Find(c.node, path) {
		if len(tags) > 0 && !matchesAnyTag(n, tagAttr, tags) {
			continue
		}
		out = append(out, n.InnerText())
	}
	return out
}

// childAttrs collects the named attribute of the sub-elements at path,
// skipping elements where the attribute is absent.
func (c *CellLine) childAttrs(path, attr string) []string {
	var out []string
	for _, n := range xmlquery.Find(c.node, path) {
		for _, a := range n.Attr {
			if a.Name.Local == attr {
				out = append(out, a.Value)
				break
			}
		}
	}
	return out
}

func matchesAnyTag(n *xmlquery.Node, tagAttr string, tags []string) bool {
	if tagAttr == "" {
		return true
	}
	value := n.SelectAttr(tagAttr)
	for _, tag := range tags {
		if value == tag {
			return true
		}
	}
	return false
}
