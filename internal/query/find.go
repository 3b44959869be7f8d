package query

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
)

// FindAll returns the records whose text content anywhere in their
// subtree contains any of the terms. Matching is case-sensitive
// substring matching over text nodes only; attribute values are not
// examined. This is the unrestricted-field counterpart of a contains
// query.
//
// Scanning every text node of every record is linear in document size;
// over a full registry release it is the slowest operation in this
// package and is the caller's responsibility to bound.
func FindAll(records []*cellosaurus.CellLine, terms ...string) ([]*cellosaurus.CellLine, error) {
	const op = errors.Op("query.FindAll")

	expr, err := compileTextScan(terms)
	if err != nil {
		return nil, errors.Wrap(op, err)
	}

	var matched []*cellosaurus.CellLine
	for _, record := range records {
		if xmlquery.QuerySelector(record.Node(), expr) != nil {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// FindFirst returns the first record, in input order, whose text
// content contains any of the terms. The boolean reports whether a
// record was found; no match is a normal outcome, not an error.
func FindFirst(records []*cellosaurus.CellLine, terms ...string) (*cellosaurus.CellLine, bool, error) {
	const op = errors.Op("query.FindFirst")

	expr, err := compileTextScan(terms)
	if err != nil {
		return nil, false, errors.Wrap(op, err)
	}

	for _, record := range records {
		if xmlquery.QuerySelector(record.Node(), expr) != nil {
			return record, true, nil
		}
	}
	return nil, false, nil
}

// compileTextScan builds the descendant text-node scan shared by the
// find functions. Terms go through the same literal escaping as
// compiled field queries.
func compileTextScan(terms []string) (*xpath.Expr, error) {
	const op = errors.Op("query.compileTextScan")

	if len(terms) == 0 {
		return nil, errors.E(op, errors.KindQuery, "find needs at least one term")
	}

	clauses := make([]string, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, "contains(., "+Literal(term)+")")
	}
	source := "descendant::text()[" + strings.Join(clauses, " or ") + "]"

	expr, err := xpath.Compile(source)
	if err != nil {
		return nil, errors.E(op, errors.KindQuery, err, "failed to compile text scan "+source)
	}
	return expr, nil
}
