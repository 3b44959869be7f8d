package query

import (
	"fmt"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/jimvine/rcellosaurus/internal/errors"
)

// Spec describes one filter: which field to examine, the values to
// match (OR-combined), and the string relation to apply. Specs are
// cheap value objects constructed per call.
type Spec struct {
	Field Field    `json:"field"`
	Terms []string `json:"terms"`
	Mode  Mode     `json:"mode"`
}

// String renders the spec in field:mode:term form for logs and errors.
func (s Spec) String() string {
	return fmt.Sprintf("%s:%s:%s", s.Field, s.Mode, strings.Join(s.Terms, "|"))
}

// Compiled is a query compiled to an XPath predicate, ready to be
// evaluated against cell-line nodes. Compiling never touches the
// document.
type Compiled struct {
	spec   Spec
	source string
	expr   *xpath.Expr
}

// Spec returns the specification the query was compiled from.
func (c *Compiled) Spec() Spec { return c.spec }

// XPath returns the XPath source the query compiled to, relative to a
// cell-line node.
func (c *Compiled) XPath() string { return c.source }

// Compile translates a Spec into an executable XPath predicate.
// Unknown fields, unknown modes, and empty term lists fail with
// query-kind errors.
func Compile(spec Spec) (*Compiled, error) {
	const op = errors.Op("query.Compile")

	desc, ok := fieldDescriptors[spec.Field]
	if !ok {
		return nil, errors.E(op, errors.KindQuery, "unsupported field: "+string(spec.Field))
	}
	if len(spec.Terms) == 0 {
		return nil, errors.E(op, errors.KindQuery, "query needs at least one term")
	}
	if _, err := ParseMode(string(spec.Mode)); err != nil {
		return nil, errors.Wrap(op, err)
	}

	source := buildXPath(desc, spec)
	expr, err := xpath.Compile(source)
	if err != nil {
		// Terms are escaped into literals, so this only fires on a
		// descriptor-table bug.
		return nil, errors.E(op, errors.KindQuery, err, "failed to compile query "+source)
	}

	return &Compiled{spec: spec, source: source, expr: expr}, nil
}

// buildXPath assembles the relative XPath for the spec. Element-axis
// fields select matching sub-elements (the engine projects any hit back
// to the enclosing record); attribute-axis fields select the record
// node itself when its attribute matches.
func buildXPath(desc descriptor, spec Spec) string {
	var target string
	switch desc.axis {
	case axisAttribute:
		target = "@" + desc.attr
	default:
		if desc.matchAttr != "" {
			target = "@" + desc.matchAttr
		} else {
			target = "."
		}
	}

	clauses := make([]string, 0, len(spec.Terms))
	for _, term := range spec.Terms {
		clauses = append(clauses, relation(spec.Mode, target, Literal(term)))
	}
	predicate := strings.Join(clauses, " or ")

	if desc.axis == axisAttribute {
		return fmt.Sprintf("self::*[%s]", predicate)
	}
	if desc.filterAttr != "" {
		return fmt.Sprintf("%s[@%s=%s][%s]",
			desc.path, desc.filterAttr, Literal(desc.filterValue), predicate)
	}
	return fmt.Sprintf("%s[%s]", desc.path, predicate)
}

// relation renders one mode comparison between a target expression and
// an already-escaped literal.
func relation(mode Mode, target, literal string) string {
	switch mode {
	case ModeContains:
		return fmt.Sprintf("contains(%s, %s)", target, literal)
	case ModeStartsWith:
		return fmt.Sprintf("starts-with(%s, %s)", target, literal)
	default:
		return fmt.Sprintf("%s = %s", target, literal)
	}
}

// Literal renders s as an XPath 1.0 string literal. XPath has no escape
// sequences inside literals, so a value containing both quote kinds has
// to be assembled with concat(). Every character of s stays literal,
// which is what keeps user terms from being interpreted as query
// syntax.
func Literal(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	pieces := make([]string, 0, len(parts)*2-1)
	for i, part := range parts {
		if i > 0 {
			pieces = append(pieces, `'"'`)
		}
		if part != "" {
			pieces = append(pieces, `"`+part+`"`)
		}
	}
	if len(pieces) == 1 {
		return pieces[0]
	}
	return "concat(" + strings.Join(pieces, ", ") + ")"
}
