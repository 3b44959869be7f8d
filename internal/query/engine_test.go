package query

import (
	"testing"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
	"github.com/jimvine/rcellosaurus/internal/testutil"
)

func accessions(records []*cellosaurus.CellLine) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Accession())
	}
	return out
}

func assertAccessions(t *testing.T, records []*cellosaurus.CellLine, want ...string) {
	t.Helper()
	got := accessions(records)
	if len(got) != len(want) {
		t.Fatalf("got records %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got records %v, want %v", got, want)
		}
	}
}

func TestFilterByPrimaryAccession(t *testing.T) {
	doc := testutil.LoadFixture(t)

	records, err := Filter(doc.CellLines(), Spec{
		Field: FieldAccession,
		Terms: []string{"CVCL_0001"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertAccessions(t, records, "CVCL_0001")
}

func TestFilterMultipleTermsOr(t *testing.T) {
	doc := testutil.LoadFixture(t)

	records, err := Filter(doc.CellLines(), Spec{
		Field: FieldSex,
		Terms: []string{"Male", "Female"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertAccessions(t, records, "CVCL_0001", "CVCL_0002")
}

// Filtering by {a, b} must equal the union of filtering by {a} and by
// {b}, and a record matched by several terms appears once.
func TestFilterOrEqualsUnionOfSingleTerms(t *testing.T) {
	doc := testutil.LoadFixture(t)
	all := doc.CellLines()

	both, err := Filter(all, Spec{Field: FieldSpecies, Terms: []string{"Homo sapiens", "Mus musculus"}, Mode: ModeEquals})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	human, err := Filter(all, Spec{Field: FieldSpecies, Terms: []string{"Homo sapiens"}, Mode: ModeEquals})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	mouse, err := Filter(all, Spec{Field: FieldSpecies, Terms: []string{"Mus musculus"}, Mode: ModeEquals})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	union := make(map[string]bool)
	for _, r := range append(human, mouse...) {
		union[r.Accession()] = true
	}
	if len(both) != len(union) {
		t.Fatalf("OR result %v does not match union of single-term results", accessions(both))
	}
	for _, r := range both {
		if !union[r.Accession()] {
			t.Errorf("record %s missing from single-term union", r.Accession())
		}
	}
}

func TestFilterChainingApproximatesAnd(t *testing.T) {
	doc := testutil.LoadFixture(t)

	cancer := Spec{Field: FieldCategory, Terms: []string{"Cancer cell line"}, Mode: ModeEquals}
	female := Spec{Field: FieldSex, Terms: []string{"Female"}, Mode: ModeEquals}

	records, err := FilterDocument(doc, cancer, female)
	if err != nil {
		t.Fatalf("FilterDocument failed: %v", err)
	}
	assertAccessions(t, records, "CVCL_0002")

	// Independent-dimension chaining commutes.
	reversed, err := FilterDocument(doc, female, cancer)
	if err != nil {
		t.Fatalf("FilterDocument failed: %v", err)
	}
	assertAccessions(t, reversed, "CVCL_0002")
}

// equals ⊆ starts-with ⊆ contains for the same term.
func TestModeContainment(t *testing.T) {
	doc := testutil.LoadFixture(t)
	all := doc.CellLines()

	subset := func(inner, outer []*cellosaurus.CellLine) bool {
		seen := make(map[string]bool)
		for _, r := range outer {
			seen[r.Accession()] = true
		}
		for _, r := range inner {
			if !seen[r.Accession()] {
				return false
			}
		}
		return true
	}

	for _, term := range []string{"HeLa", "CVCL_000", "Homo sapiens", "Erythro"} {
		eq, err := Filter(all, Spec{Field: FieldName, Terms: []string{term}, Mode: ModeEquals})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		sw, err := Filter(all, Spec{Field: FieldName, Terms: []string{term}, Mode: ModeStartsWith})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		ct, err := Filter(all, Spec{Field: FieldName, Terms: []string{term}, Mode: ModeContains})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}

		if !subset(eq, sw) {
			t.Errorf("term %q: equals results not a subset of starts-with", term)
		}
		if !subset(sw, ct) {
			t.Errorf("term %q: starts-with results not a subset of contains", term)
		}
		if len(ct) > len(all) {
			t.Errorf("term %q: contains results exceed the universe", term)
		}
	}
}

func TestFilterIsCaseSensitive(t *testing.T) {
	doc := testutil.LoadFixture(t)
	all := doc.CellLines()

	for _, mode := range []Mode{ModeEquals, ModeContains, ModeStartsWith} {
		records, err := Filter(all, Spec{Field: FieldName, Terms: []string{"hela"}, Mode: mode})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("mode %s: lowercase term must not match stored 'HeLa', got %v",
				mode, accessions(records))
		}
	}
}

// A record with no sex attribute is excluded from sex filters for any
// non-empty term, and never causes an error.
func TestFilterAbsentAttribute(t *testing.T) {
	doc := testutil.LoadFixture(t)
	all := doc.CellLines()

	for _, mode := range []Mode{ModeEquals, ModeContains, ModeStartsWith} {
		records, err := Filter(all, Spec{Field: FieldSex, Terms: []string{"Male"}, Mode: mode})
		if err != nil {
			t.Fatalf("Filter failed: %v", err)
		}
		for _, r := range records {
			if r.Accession() == "CVCL_0003" {
				t.Errorf("mode %s: record without sex attribute must not match", mode)
			}
		}
	}
}

func TestFilterSecondaryAccession(t *testing.T) {
	doc := testutil.LoadFixture(t)

	records, err := Filter(doc.CellLines(), Spec{
		Field: FieldAccessionSecondary,
		Terms: []string{"CVCL_U001"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertAccessions(t, records, "CVCL_0001")

	// The secondary value must not satisfy the primary-restricted field.
	records, err = Filter(doc.CellLines(), Spec{
		Field: FieldAccessionPrimary,
		Terms: []string{"CVCL_U001"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("secondary accession matched accession-primary: %v", accessions(records))
	}
}

func TestFilterAttributeVariantFields(t *testing.T) {
	doc := testutil.LoadFixture(t)
	all := doc.CellLines()

	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{
			name: "species accession",
			spec: Spec{Field: FieldSpeciesAccession, Terms: []string{"10090"}, Mode: ModeEquals},
			want: []string{"CVCL_0003"},
		},
		{
			name: "disease accession",
			spec: Spec{Field: FieldDiseaseAccession, Terms: []string{"C4915"}, Mode: ModeEquals},
			want: []string{"CVCL_0002"},
		},
		{
			name: "comment category",
			spec: Spec{Field: FieldCommentCategory, Terms: []string{"Problematic cell line"}, Mode: ModeEquals},
			want: []string{"CVCL_0002"},
		},
		{
			name: "derived-from accession",
			spec: Spec{Field: FieldDerivedFromAccession, Terms: []string{"CVCL_2481"}, Mode: ModeEquals},
			want: []string{"CVCL_0001"},
		},
		{
			name: "same-origin-as name",
			spec: Spec{Field: FieldSameOriginAs, Terms: []string{"HeLa S3"}, Mode: ModeEquals},
			want: []string{"CVCL_0002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Filter(all, tt.spec)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			assertAccessions(t, records, tt.want...)
		})
	}
}

func TestFilterTermWithQuotesMatchesLiterally(t *testing.T) {
	doc := testutil.LoadFixture(t)

	// Quote and bracket characters in terms are data, not query syntax:
	// the filter must run and simply match nothing.
	for _, term := range []string{`"] | //cell-line["`, `' or @sex='Male`, `a"b'c`} {
		records, err := Filter(doc.CellLines(), Spec{
			Field: FieldName,
			Terms: []string{term},
			Mode:  ModeContains,
		})
		if err != nil {
			t.Fatalf("Filter with term %q failed: %v", term, err)
		}
		if len(records) != 0 {
			t.Errorf("term %q should match nothing, got %v", term, accessions(records))
		}
	}
}

func TestFilterEmptyResultIsNotAnError(t *testing.T) {
	doc := testutil.LoadFixture(t)

	records, err := Filter(doc.CellLines(), Spec{
		Field: FieldAccession,
		Terms: []string{"CVCL_9999"},
		Mode:  ModeEquals,
	})
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %v", accessions(records))
	}
}

func TestFilterUnsupportedFieldSurfaces(t *testing.T) {
	doc := testutil.LoadFixture(t)

	_, err := Filter(doc.CellLines(), Spec{Field: "ploidy", Terms: []string{"2n"}, Mode: ModeEquals})
	if err == nil {
		t.Fatal("expected unsupported-field error")
	}
	if !errors.IsKind(err, errors.KindQuery) {
		t.Errorf("expected query-kind error, got %v", err)
	}
}

func TestFilterIsDeterministicAndNonMutating(t *testing.T) {
	doc := testutil.LoadFixture(t)
	spec := Spec{Field: FieldCategory, Terms: []string{"Cancer cell line"}, Mode: ModeEquals}

	first, err := Filter(doc.CellLines(), spec)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	second, err := Filter(doc.CellLines(), spec)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	assertAccessions(t, second, accessions(first)...)
	if got := len(doc.CellLines()); got != 3 {
		t.Errorf("document changed size after filtering: %d records", got)
	}
}
