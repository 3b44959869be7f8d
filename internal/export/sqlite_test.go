package export

import (
	"path/filepath"
	"testing"

	"github.com/jimvine/rcellosaurus/internal/testutil"
)

func TestExportFixture(t *testing.T) {
	doc := testutil.LoadFixture(t)

	db, err := Open(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	exported, err := db.Export(doc, 2)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported != 3 {
		t.Errorf("exported %d records, want 3", exported)
	}

	counts, err := db.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts["cell_lines"] != 3 {
		t.Errorf("cell_lines = %d, want 3", counts["cell_lines"])
	}
	if counts["accessions"] != 4 {
		t.Errorf("accessions = %d, want 4", counts["accessions"])
	}
	if counts["names"] != 6 {
		t.Errorf("names = %d, want 6", counts["names"])
	}
	if counts["comments"] != 3 {
		t.Errorf("comments = %d, want 3", counts["comments"])
	}
	if counts["species"] != 3 {
		t.Errorf("species = %d, want 3", counts["species"])
	}
	if counts["relatives"] != 2 {
		t.Errorf("relatives = %d, want 2", counts["relatives"])
	}
	if counts["cross_references"] != 3 {
		t.Errorf("cross_references = %d, want 3", counts["cross_references"])
	}
}

func TestExportedRowValues(t *testing.T) {
	doc := testutil.LoadFixture(t)

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := db.Export(doc, 0); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var name, category, sex string
	err = db.QueryRow(
		"SELECT name, category, sex FROM cell_lines WHERE accession = ?", "CVCL_0002",
	).Scan(&name, &category, &sex)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if name != "HeLa" || category != "Cancer cell line" || sex != "Female" {
		t.Errorf("row = %q, %q, %q", name, category, sex)
	}

	// A record without a sex attribute exports an empty sex column.
	err = db.QueryRow(
		"SELECT sex FROM cell_lines WHERE accession = ?", "CVCL_0003",
	).Scan(&sex)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if sex != "" {
		t.Errorf("sex = %q, want empty", sex)
	}

	var taxonomy string
	err = db.QueryRow(
		"SELECT taxonomy_accession FROM species WHERE cell_line = ?", "CVCL_0003",
	).Scan(&taxonomy)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if taxonomy != "10090" {
		t.Errorf("taxonomy accession = %q, want 10090", taxonomy)
	}
}

func TestExportIsRepeatable(t *testing.T) {
	doc := testutil.LoadFixture(t)

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := db.Export(doc, 0); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if _, err := db.Export(doc, 0); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	counts, err := db.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	// cell_lines upserts on accession; child tables append.
	if counts["cell_lines"] != 3 {
		t.Errorf("cell_lines = %d, want 3 after re-export", counts["cell_lines"])
	}
}
