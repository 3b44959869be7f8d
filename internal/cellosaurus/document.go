// Package cellosaurus provides read-only access to a parsed Cellosaurus
// cell-line registry release. It wraps the XML DOM produced by xmlquery
// and exposes record enumeration plus per-record field extraction.
//
// The document is immutable after Load. Nothing in this package (or in
// the query package built on top of it) mutates the tree, so a single
// Document may be shared by concurrent readers without coordination.
package cellosaurus

import (
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/jimvine/rcellosaurus/internal/errors"
)

// Document holds one parsed Cellosaurus XML release.
type Document struct {
	root *xmlquery.Node
}

// Load parses a Cellosaurus XML document from the reader.
// Malformed XML fails with a parse-kind error.
func Load(r io.Reader) (*Document, error) {
	const op = errors.Op("cellosaurus.Load")

	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.E(op, errors.KindParse, err, "failed to parse document")
	}
	return &Document{root: root}, nil
}

// LoadFile parses a Cellosaurus XML document from the given path.
func LoadFile(path string) (*Document, error) {
	const op = errors.Op("cellosaurus.LoadFile")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "failed to open document")
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(op, err)
	}
	return doc, nil
}

// Root returns the root node of the parsed tree.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// CellLines returns all top-level cell-line records in document order.
// This is the full record collection every filter operation narrows from.
func (d *Document) CellLines() []*CellLine {
	nodes := xmlquery.Find(d.root, "//cell-line-list/cell-line")
	lines := make([]*CellLine, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, &CellLine{node: n})
	}
	return lines
}

// CellLine looks up a single record by accession (primary or secondary).
// The second return value reports whether a record was found.
func (d *Document) CellLine(accession string) (*CellLine, bool) {
	for _, line := range d.CellLines() {
		for _, acc := range line.Accessions() {
			if acc == accession {
				return line, true
			}
		}
	}
	return nil, false
}

// Stats summarizes a loaded document.
type Stats struct {
	CellLines  int            `json:"cell_lines"`
	ByCategory map[string]int `json:"by_category"`
	BySex      map[string]int `json:"by_sex"`
}

// Stats counts records by category and sex. Records without a sex
// attribute are counted under "unknown".
func (d *Document) Stats() Stats {
	stats := Stats{
		ByCategory: make(map[string]int),
		BySex:      make(map[string]int),
	}
	for _, line := range d.CellLines() {
		stats.CellLines++
		if category, ok := line.Category(); ok {
			stats.ByCategory[category]++
		}
		if sex, ok := line.Sex(); ok {
			stats.BySex[sex]++
		} else {
			stats.BySex["unknown"]++
		}
	}
	return stats
}
