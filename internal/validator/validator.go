// Package validator provides input validation for query parameters
// arriving from the CLI and the HTTP API.
package validator

import (
	"regexp"
	"strings"

	"github.com/jimvine/rcellosaurus/internal/errors"
	"github.com/jimvine/rcellosaurus/internal/query"
)

// Cellosaurus accessions are CVCL_ followed by four characters from
// [A-Z0-9].
var accessionPattern = regexp.MustCompile(`^CVCL_[A-Z0-9]{4}$`)

// ValidateAccession checks that s has the Cellosaurus accession format.
func ValidateAccession(s string) error {
	const op = errors.Op("validator.ValidateAccession")

	if s == "" {
		return errors.E(op, errors.KindValidation, "accession must not be empty")
	}
	if !accessionPattern.MatchString(s) {
		return errors.E(op, errors.KindValidation,
			"invalid accession format: "+s+" (expected CVCL_ followed by four characters)")
	}
	return nil
}

// ValidateSpec checks a query specification before it reaches the
// compiler, so callers get validation-kind errors for malformed input
// and query-kind errors only from the compiler itself.
func ValidateSpec(spec query.Spec) error {
	const op = errors.Op("validator.ValidateSpec")

	if _, err := query.ParseField(string(spec.Field)); err != nil {
		return errors.WrapKind(op, errors.KindValidation, err)
	}
	if _, err := query.ParseMode(string(spec.Mode)); err != nil {
		return errors.WrapKind(op, errors.KindValidation, err)
	}
	if len(spec.Terms) == 0 {
		return errors.E(op, errors.KindValidation, "at least one term is required")
	}
	for _, term := range spec.Terms {
		if term == "" {
			return errors.E(op, errors.KindValidation, "terms must not be empty")
		}
	}
	return nil
}

// ParseWhere parses a field:mode:term clause as used by the CLI
// --where flag and the API. The term may itself contain colons.
func ParseWhere(clause string) (query.Spec, error) {
	const op = errors.Op("validator.ParseWhere")

	parts := strings.SplitN(clause, ":", 3)
	if len(parts) != 3 {
		return query.Spec{}, errors.E(op, errors.KindValidation,
			"expected field:mode:term, got "+clause)
	}

	field, err := query.ParseField(parts[0])
	if err != nil {
		return query.Spec{}, errors.WrapKind(op, errors.KindValidation, err)
	}
	mode, err := query.ParseMode(parts[1])
	if err != nil {
		return query.Spec{}, errors.WrapKind(op, errors.KindValidation, err)
	}

	spec := query.Spec{Field: field, Mode: mode, Terms: []string{parts[2]}}
	if err := ValidateSpec(spec); err != nil {
		return query.Spec{}, err
	}
	return spec, nil
}
