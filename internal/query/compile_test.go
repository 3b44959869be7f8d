package query

import (
	"strings"
	"testing"

	"github.com/jimvine/rcellosaurus/internal/errors"
)

func TestCompileElementField(t *testing.T) {
	compiled, err := Compile(Spec{
		Field: FieldAccession,
		Terms: []string{"CVCL_0001"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := `accession-list/accession[. = "CVCL_0001"]`
	if compiled.XPath() != want {
		t.Errorf("XPath = %q, want %q", compiled.XPath(), want)
	}
}

func TestCompileXPathShapes(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "type-restricted element field",
			spec: Spec{Field: FieldAccessionPrimary, Terms: []string{"CVCL_0001"}, Mode: ModeEquals},
			want: `accession-list/accession[@type="primary"][. = "CVCL_0001"]`,
		},
		{
			name: "record attribute field",
			spec: Spec{Field: FieldSex, Terms: []string{"Male"}, Mode: ModeEquals},
			want: `self::*[@sex = "Male"]`,
		},
		{
			name: "sub-element attribute field",
			spec: Spec{Field: FieldSpeciesAccession, Terms: []string{"9606"}, Mode: ModeEquals},
			want: `species-list/cv-term[@accession = "9606"]`,
		},
		{
			name: "comment category attribute",
			spec: Spec{Field: FieldCommentCategory, Terms: []string{"Group"}, Mode: ModeEquals},
			want: `comment-list/comment[@category = "Group"]`,
		},
		{
			name: "contains mode",
			spec: Spec{Field: FieldName, Terms: []string{"HeLa"}, Mode: ModeContains},
			want: `name-list/name[contains(., "HeLa")]`,
		},
		{
			name: "starts-with mode",
			spec: Spec{Field: FieldDisease, Terms: []string{"Cervical"}, Mode: ModeStartsWith},
			want: `disease-list/cv-term[starts-with(., "Cervical")]`,
		},
		{
			name: "multiple terms combine with or",
			spec: Spec{Field: FieldSex, Terms: []string{"Male", "Female"}, Mode: ModeEquals},
			want: `self::*[@sex = "Male" or @sex = "Female"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := Compile(tt.spec)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if compiled.XPath() != tt.want {
				t.Errorf("XPath = %q, want %q", compiled.XPath(), tt.want)
			}
		})
	}
}

func TestCompileUnsupportedField(t *testing.T) {
	_, err := Compile(Spec{Field: "karyotype", Terms: []string{"x"}, Mode: ModeEquals})
	if err == nil {
		t.Fatal("expected error for unsupported field")
	}
	if !errors.IsKind(err, errors.KindQuery) {
		t.Errorf("expected query-kind error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported field") {
		t.Errorf("error should name the failure, got %q", err.Error())
	}
}

func TestCompileRejectsEmptyTerms(t *testing.T) {
	_, err := Compile(Spec{Field: FieldAccession, Mode: ModeEquals})
	if err == nil {
		t.Fatal("expected error for empty term list")
	}
	if !errors.IsKind(err, errors.KindQuery) {
		t.Errorf("expected query-kind error, got %v", err)
	}
}

func TestCompileRejectsUnknownMode(t *testing.T) {
	_, err := Compile(Spec{Field: FieldAccession, Terms: []string{"x"}, Mode: "fuzzy"})
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !errors.IsKind(err, errors.KindQuery) {
		t.Errorf("expected query-kind error, got %v", err)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{``, `""`},
		{`plain`, `"plain"`},
		{`with 'single' quotes`, `"with 'single' quotes"`},
		{`with "double" quotes`, `'with "double" quotes'`},
		{`both "double" and 'single'`, `concat("both ", '"', "double", '"', " and 'single'")`},
		{`"`, `'"'`},
		{`[brackets]`, `"[brackets]"`},
	}

	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(string(f))
		if err != nil {
			t.Errorf("ParseField(%q) failed: %v", f, err)
		}
		if got != f {
			t.Errorf("ParseField(%q) = %q", f, got)
		}
	}

	if _, err := ParseField("telomere-length"); err == nil {
		t.Error("expected error for unknown field name")
	}
}

func TestFieldsIsComplete(t *testing.T) {
	if got := len(Fields()); got != 18 {
		t.Errorf("expected 18 supported fields, got %d", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"equals", "contains", "starts-with"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseMode("regex"); err == nil {
		t.Error("expected error for unknown mode name")
	}
}

func TestSpecString(t *testing.T) {
	s := Spec{Field: FieldSex, Terms: []string{"Male", "Female"}, Mode: ModeEquals}
	if got := s.String(); got != "sex:equals:Male|Female" {
		t.Errorf("String() = %q", got)
	}
}
