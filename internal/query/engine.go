package query

import (
	"github.com/antchfx/xmlquery"
	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
)

// Filter applies one query to a record collection and returns the
// matching subset in input order. Each input record is evaluated once
// and emitted at most once per occurrence, even when several terms of
// an OR group match it. An empty result is a normal value, not an
// error.
//
// The input records and the document they belong to are never mutated,
// so repeated calls with the same inputs return identical results.
func Filter(records []*cellosaurus.CellLine, spec Spec) ([]*cellosaurus.CellLine, error) {
	const op = errors.Op("query.Filter")

	compiled, err := Compile(spec)
	if err != nil {
		return nil, errors.Wrap(op, err)
	}
	return filterCompiled(records, compiled), nil
}

// FilterDocument runs one or more queries against the document's full
// record set. Successive specs are applied to the previous spec's
// output, which is this layer's only mechanism for AND semantics: each
// pass narrows the working set, and because the predicates are
// evaluated independently the order of specs does not change the
// result.
func FilterDocument(doc *cellosaurus.Document, specs ...Spec) ([]*cellosaurus.CellLine, error) {
	const op = errors.Op("query.FilterDocument")

	records := doc.CellLines()
	for _, spec := range specs {
		var err error
		records, err = Filter(records, spec)
		if err != nil {
			return nil, errors.Wrap(op, err)
		}
	}
	return records, nil
}

// filterCompiled evaluates an already-compiled query. Element-axis
// queries select matching sub-elements; a non-nil hit anywhere under
// the record keeps the enclosing record.
func filterCompiled(records []*cellosaurus.CellLine, compiled *Compiled) []*cellosaurus.CellLine {
	var matched []*cellosaurus.CellLine
	for _, record := range records {
		if xmlquery.QuerySelector(record.Node(), compiled.expr) != nil {
			matched = append(matched, record)
		}
	}
	return matched
}
