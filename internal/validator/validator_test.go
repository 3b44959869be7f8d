package validator

import (
	"testing"

	"github.com/jimvine/rcellosaurus/internal/errors"
	"github.com/jimvine/rcellosaurus/internal/query"
)

func TestValidateAccession(t *testing.T) {
	valid := []string{"CVCL_0001", "CVCL_E548", "CVCL_U001", "CVCL_9999"}
	for _, acc := range valid {
		if err := ValidateAccession(acc); err != nil {
			t.Errorf("ValidateAccession(%q) failed: %v", acc, err)
		}
	}

	invalid := []string{"", "CVCL_", "CVCL_00001", "cvcl_0001", "SRP000001", "CVCL-0001"}
	for _, acc := range invalid {
		err := ValidateAccession(acc)
		if err == nil {
			t.Errorf("ValidateAccession(%q) should fail", acc)
			continue
		}
		if !errors.IsKind(err, errors.KindValidation) {
			t.Errorf("ValidateAccession(%q): expected validation-kind error, got %v", acc, err)
		}
	}
}

func TestValidateSpec(t *testing.T) {
	good := query.Spec{Field: query.FieldSex, Terms: []string{"Male"}, Mode: query.ModeEquals}
	if err := ValidateSpec(good); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}

	tests := []struct {
		name string
		spec query.Spec
	}{
		{"unknown field", query.Spec{Field: "ploidy", Terms: []string{"2n"}, Mode: query.ModeEquals}},
		{"unknown mode", query.Spec{Field: query.FieldSex, Terms: []string{"Male"}, Mode: "regex"}},
		{"no terms", query.Spec{Field: query.FieldSex, Mode: query.ModeEquals}},
		{"empty term", query.Spec{Field: query.FieldSex, Terms: []string{""}, Mode: query.ModeEquals}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpec(tt.spec)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsKind(err, errors.KindValidation) {
				t.Errorf("expected validation-kind error, got %v", err)
			}
		})
	}
}

func TestParseWhere(t *testing.T) {
	spec, err := ParseWhere("sex:equals:Male")
	if err != nil {
		t.Fatalf("ParseWhere failed: %v", err)
	}
	if spec.Field != query.FieldSex || spec.Mode != query.ModeEquals {
		t.Errorf("spec = %+v", spec)
	}
	if len(spec.Terms) != 1 || spec.Terms[0] != "Male" {
		t.Errorf("terms = %v", spec.Terms)
	}
}

func TestParseWhereTermMayContainColons(t *testing.T) {
	spec, err := ParseWhere("comment:contains:Part of: ENCODE")
	if err != nil {
		t.Fatalf("ParseWhere failed: %v", err)
	}
	if spec.Terms[0] != "Part of: ENCODE" {
		t.Errorf("term = %q", spec.Terms[0])
	}
}

func TestParseWhereRejectsMalformedClauses(t *testing.T) {
	for _, clause := range []string{"", "sex", "sex:equals", "ploidy:equals:2n", "sex:regex:Male"} {
		if _, err := ParseWhere(clause); err == nil {
			t.Errorf("ParseWhere(%q) should fail", clause)
		}
	}
}
