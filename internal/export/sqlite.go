// Package export flattens a loaded Cellosaurus document into a
// relational SQLite database. The export is a derived artifact for
// downstream SQL tooling; the XML document itself is never modified.
package export

import (
	"database/sql"
	"fmt"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection holding an export.
type DB struct {
	*sql.DB
	path string
}

// Open creates and configures the export database at path. Use
// ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	const op = errors.Op("export.Open")

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, errors.E(op, errors.KindDatabase, err, "failed to open database")
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA foreign_keys = OFF", // re-derived wholesale, no need to check
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.E(op, errors.KindDatabase, err, "failed to set pragma")
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, errors.E(op, errors.KindDatabase, err, "failed to create tables")
	}

	return &DB{DB: db, path: path}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cell_lines (
		accession TEXT PRIMARY KEY,
		name TEXT,
		category TEXT,
		sex TEXT
	);

	CREATE TABLE IF NOT EXISTS accessions (
		cell_line TEXT REFERENCES cell_lines(accession),
		accession TEXT NOT NULL,
		type TEXT
	);

	CREATE TABLE IF NOT EXISTS names (
		cell_line TEXT REFERENCES cell_lines(accession),
		name TEXT NOT NULL,
		type TEXT
	);

	CREATE TABLE IF NOT EXISTS comments (
		cell_line TEXT REFERENCES cell_lines(accession),
		category TEXT,
		comment TEXT
	);

	CREATE TABLE IF NOT EXISTS species (
		cell_line TEXT REFERENCES cell_lines(accession),
		name TEXT,
		taxonomy_accession TEXT
	);

	CREATE TABLE IF NOT EXISTS diseases (
		cell_line TEXT REFERENCES cell_lines(accession),
		name TEXT,
		terminology_accession TEXT
	);

	CREATE TABLE IF NOT EXISTS relatives (
		cell_line TEXT REFERENCES cell_lines(accession),
		relation TEXT NOT NULL, -- derived-from | same-origin-as
		name TEXT,
		accession TEXT
	);

	CREATE TABLE IF NOT EXISTS web_pages (
		cell_line TEXT REFERENCES cell_lines(accession),
		url TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cross_references (
		cell_line TEXT REFERENCES cell_lines(accession),
		ref TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cell_lines_category ON cell_lines(category);
	CREATE INDEX IF NOT EXISTS idx_cell_lines_sex ON cell_lines(sex);
	CREATE INDEX IF NOT EXISTS idx_accessions_accession ON accessions(accession);
	CREATE INDEX IF NOT EXISTS idx_names_name ON names(name);
	CREATE INDEX IF NOT EXISTS idx_species_taxonomy ON species(taxonomy_accession);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Export writes every record of the document into the database in
// batched transactions. It returns the number of records exported.
// Records without a primary accession are counted and skipped.
func (db *DB) Export(doc *cellosaurus.Document, batchSize int) (int, error) {
	const op = errors.Op("export.Export")

	if batchSize <= 0 {
		batchSize = 500
	}

	skipped := errors.NewSkipCounter("exporting cell lines")
	lines := doc.CellLines()
	exported := 0

	for start := 0; start < len(lines); start += batchSize {
		end := start + batchSize
		if end > len(lines) {
			end = len(lines)
		}

		tx, err := db.Begin()
		if err != nil {
			return exported, errors.E(op, errors.KindDatabase, err, "failed to begin transaction")
		}

		for _, line := range lines[start:end] {
			accession := line.Accession()
			if accession == "" {
				skipped.Skip(nil, line.Name())
				continue
			}
			if err := insertCellLine(tx, accession, line); err != nil {
				tx.Rollback()
				return exported, errors.E(op, errors.KindDatabase, err, "failed to insert "+accession)
			}
			exported++
		}

		if err := tx.Commit(); err != nil {
			return exported, errors.E(op, errors.KindDatabase, err, "failed to commit batch")
		}
	}

	skipped.Report()
	return exported, nil
}

func insertCellLine(tx *sql.Tx, accession string, line *cellosaurus.CellLine) error {
	category, _ := line.Category()
	sex, _ := line.Sex()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO cell_lines (accession, name, category, sex) VALUES (?, ?, ?, ?)",
		accession, line.Name(), category, sex,
	); err != nil {
		return err
	}

	for _, typ := range []string{"primary", "secondary"} {
		for _, acc := range line.Accessions(typ) {
			if _, err := tx.Exec(
				"INSERT INTO accessions (cell_line, accession, type) VALUES (?, ?, ?)",
				accession, acc, typ,
			); err != nil {
				return err
			}
		}
	}

	for _, typ := range []string{"identifier", "synonym"} {
		for _, name := range line.Names(typ) {
			if _, err := tx.Exec(
				"INSERT INTO names (cell_line, name, type) VALUES (?, ?, ?)",
				accession, name, typ,
			); err != nil {
				return err
			}
		}
	}

	if err := insertTaggedPairs(tx,
		"INSERT INTO species (cell_line, name, taxonomy_accession) VALUES (?, ?, ?)",
		accession, line.Species(), line.SpeciesAccessions()); err != nil {
		return err
	}
	if err := insertTaggedPairs(tx,
		"INSERT INTO diseases (cell_line, name, terminology_accession) VALUES (?, ?, ?)",
		accession, line.Diseases(), line.DiseaseAccessions()); err != nil {
		return err
	}

	if err := insertRelatives(tx, accession, "derived-from",
		line.DerivedFrom(), line.DerivedFromAccessions()); err != nil {
		return err
	}
	if err := insertRelatives(tx, accession, "same-origin-as",
		line.SameOriginAs(), line.SameOriginAsAccessions()); err != nil {
		return err
	}

	for _, comment := range line.CommentEntries() {
		if _, err := tx.Exec(
			"INSERT INTO comments (cell_line, category, comment) VALUES (?, ?, ?)",
			accession, comment.Category, comment.Text,
		); err != nil {
			return err
		}
	}

	for _, url := range line.WebPages() {
		if _, err := tx.Exec(
			"INSERT INTO web_pages (cell_line, url) VALUES (?, ?)",
			accession, url,
		); err != nil {
			return err
		}
	}

	for _, ref := range line.References() {
		if _, err := tx.Exec(
			"INSERT INTO cross_references (cell_line, ref) VALUES (?, ?)",
			accession, ref,
		); err != nil {
			return err
		}
	}

	return nil
}

// insertTaggedPairs zips parallel name/accession slices into rows. The
// slices come from the same sub-element list so they have equal length;
// a mismatch would mean a malformed record, tolerated by zipping the
// shorter prefix.
func insertTaggedPairs(tx *sql.Tx, stmt, cellLine string, names, accs []string) error {
	n := len(names)
	if len(accs) < n {
		n = len(accs)
	}
	for i := 0; i < n; i++ {
		if _, err := tx.Exec(stmt, cellLine, names[i], accs[i]); err != nil {
			return err
		}
	}
	return nil
}

func insertRelatives(tx *sql.Tx, cellLine, relation string, names, accs []string) error {
	n := len(names)
	if len(accs) < n {
		n = len(accs)
	}
	for i := 0; i < n; i++ {
		if _, err := tx.Exec(
			"INSERT INTO relatives (cell_line, relation, name, accession) VALUES (?, ?, ?, ?)",
			cellLine, relation, names[i], accs[i],
		); err != nil {
			return err
		}
	}
	return nil
}

// Counts reports row counts per table, for post-export sanity output.
func (db *DB) Counts() (map[string]int, error) {
	const op = errors.Op("export.Counts")

	tables := []string{
		"cell_lines", "accessions", "names", "comments", "species",
		"diseases", "relatives", "web_pages", "cross_references",
	}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, errors.E(op, errors.KindDatabase, err, "failed to count "+table)
		}
		counts[table] = n
	}
	return counts, nil
}
