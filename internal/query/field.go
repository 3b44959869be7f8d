// Package query implements the structured filtering layer over a loaded
// Cellosaurus document. A query is a (field, terms, mode) triple: the
// field selects which part of each cell-line record is examined, the
// terms are OR-combined match values, and the mode picks the string
// relation (equals, contains, starts-with).
//
// Queries compile to XPath predicates evaluated per record. Terms are
// embedded as escaped XPath string literals, so quote and bracket
// characters in a term always match literally. All matching is
// case-sensitive with no normalization.
//
// The layer has no native AND: callers narrow across dimensions by
// applying Filter repeatedly, each call consuming the previous call's
// output.
package query

import (
	"sort"

	"github.com/jimvine/rcellosaurus/internal/errors"
)

// Field identifies which part of a cell-line record a query examines.
type Field string

// The supported query fields. The plain element fields match sub-element
// text; the -primary/-secondary/-identifier/-synonym variants restrict
// on the sub-element's type attribute; the -accession variants (and
// comment-category) match a sub-element attribute instead of its text;
// category and sex match attributes of the cell-line element itself.
const (
	FieldAccession             Field = "accession"
	FieldAccessionPrimary      Field = "accession-primary"
	FieldAccessionSecondary    Field = "accession-secondary"
	FieldName                  Field = "name"
	FieldNameIdentifier        Field = "name-identifier"
	FieldNameSynonym           Field = "name-synonym"
	FieldCategory              Field = "category"
	FieldSex                   Field = "sex"
	FieldSpecies               Field = "species"
	FieldSpeciesAccession      Field = "species-accession"
	FieldComment               Field = "comment"
	FieldCommentCategory       Field = "comment-category"
	FieldSameOriginAs          Field = "same-origin-as"
	FieldSameOriginAsAccession Field = "same-origin-as-accession"
	FieldDerivedFrom           Field = "derived-from"
	FieldDerivedFromAccession  Field = "derived-from-accession"
	FieldDisease               Field = "disease"
	FieldDiseaseAccession      Field = "disease-accession"
)

// Mode is the string relation a query applies between the targeted
// value and each term.
type Mode string

const (
	ModeEquals     Mode = "equals"
	ModeContains   Mode = "contains"
	ModeStartsWith Mode = "starts-with"
)

// axis says whether a field targets sub-elements of the record or an
// attribute of the record element itself.
type axis uint8

const (
	axisElement axis = iota
	axisAttribute
)

// descriptor drives field-to-XPath dispatch. Keeping this as data, keyed
// by field, makes the unsupported-field failure a plain lookup miss and
// keeps the compiler free of per-field branching.
type descriptor struct {
	axis        axis
	path        string // relative sub-element path (element axis)
	attr        string // record attribute name (attribute axis)
	filterAttr  string // sub-element attribute that must equal filterValue
	filterValue string
	matchAttr   string // match this sub-element attribute instead of text
}

var fieldDescriptors = map[Field]descriptor{
	FieldAccession:          {axis: axisElement, path: "accession-list/accession"},
	FieldAccessionPrimary:   {axis: axisElement, path: "accession-list/accession", filterAttr: "type", filterValue: "primary"},
	FieldAccessionSecondary: {axis: axisElement, path: "accession-list/accession", filterAttr: "type", filterValue: "secondary"},
	FieldName:               {axis: axisElement, path: "name-list/name"},
	FieldNameIdentifier:     {axis: axisElement, path: "name-list/name", filterAttr: "type", filterValue: "identifier"},
	FieldNameSynonym:        {axis: axisElement, path: "name-list/name", filterAttr: "type", filterValue: "synonym"},

	FieldCategory: {axis: axisAttribute, attr: "category"},
	FieldSex:      {axis: axisAttribute, attr: "sex"},

	FieldSpecies:          {axis: axisElement, path: "species-list/cv-term"},
	FieldSpeciesAccession: {axis: axisElement, path: "species-list/cv-term", matchAttr: "accession"},
	FieldComment:          {axis: axisElement, path: "comment-list/comment"},
	FieldCommentCategory:  {axis: axisElement, path: "comment-list/comment", matchAttr: "category"},

	FieldSameOriginAs:          {axis: axisElement, path: "same-origin-as/cv-term"},
	FieldSameOriginAsAccession: {axis: axisElement, path: "same-origin-as/cv-term", matchAttr: "accession"},
	FieldDerivedFrom:           {axis: axisElement, path: "derived-from/cv-term"},
	FieldDerivedFromAccession:  {axis: axisElement, path: "derived-from/cv-term", matchAttr: "accession"},
	FieldDisease:               {axis: axisElement, path: "disease-list/cv-term"},
	FieldDiseaseAccession:      {axis: axisElement, path: "disease-list/cv-term", matchAttr: "accession"},
}

// Fields returns the supported field names in sorted order.
func Fields() []Field {
	fields := make([]Field, 0, len(fieldDescriptors))
	for f := range fieldDescriptors {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// ParseField validates a field name. Unknown names fail with a
// query-kind error rather than compiling to a predicate that silently
// matches nothing.
func ParseField(s string) (Field, error) {
	const op = errors.Op("query.ParseField")

	f := Field(s)
	if _, ok := fieldDescriptors[f]; !ok {
		return "", errors.E(op, errors.KindQuery, "unsupported field: "+s)
	}
	return f, nil
}

// ParseMode validates a match mode name.
func ParseMode(s string) (Mode, error) {
	const op = errors.Op("query.ParseMode")

	switch m := Mode(s); m {
	case ModeEquals, ModeContains, ModeStartsWith:
		return m, nil
	default:
		return "", errors.E(op, errors.KindQuery, "unsupported match mode: "+s)
	}
}
