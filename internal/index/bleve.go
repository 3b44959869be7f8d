// Package index provides an optional Bleve full-text index over the
// cell-line registry for ranked, analyzed search.
//
// This is a convenience layer with different semantics from the query
// package: Bleve analyzes and lowercases text, so searches here are
// case-insensitive and relevance-ranked. The exact, case-sensitive
// filter and find operations never go through this index.
package index

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
)

// Index wraps the Bleve search index.
type Index struct {
	index bleve.Index
	path  string
}

// CellLineDoc is the indexed projection of one cell-line record.
type CellLineDoc struct {
	Accession string   `json:"accession"`
	Names     []string `json:"names"`
	Category  string   `json:"category"`
	Sex       string   `json:"sex"`
	Species   []string `json:"species"`
	Diseases  []string `json:"diseases"`
	Comments  []string `json:"comments"`
}

// Hit is one ranked search result.
type Hit struct {
	Accession string  `json:"accession"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
}

// Result holds the ranked hits for one search.
type Result struct {
	Hits  []Hit  `json:"hits"`
	Total uint64 `json:"total"`
}

// Open opens an existing index, or creates a new one at path.
func Open(path string) (*Index, error) {
	const op = errors.Op("index.Open")

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, createIndexMapping())
		if err != nil {
			return nil, errors.E(op, errors.KindIndex, err, "failed to create index")
		}
	} else if err != nil {
		return nil, errors.E(op, errors.KindIndex, err, "failed to open index")
	}

	return &Index{index: idx, path: path}, nil
}

// createIndexMapping builds the document mapping: keyword analysis for
// code-like fields, standard analysis for prose.
func createIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("accession", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("names", textFieldMapping())
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("sex", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("species", textFieldMapping())
	docMapping.AddFieldMappingsAt("diseases", textFieldMapping())
	docMapping.AddFieldMappingsAt("comments", textFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func keywordFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

func textFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "standard"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

// DocFor projects a cell-line record into its indexed form.
func DocFor(line *cellosaurus.CellLine) CellLineDoc {
	doc := CellLineDoc{
		Accession: line.Accession(),
		Names:     line.Names(),
		Species:   line.Species(),
		Diseases:  line.Diseases(),
		Comments:  line.Comments(),
	}
	doc.Category, _ = line.Category()
	doc.Sex, _ = line.Sex()
	return doc
}

// Build indexes every record of the document in batches. Records
// without a primary accession are counted and skipped, never fatal.
func (i *Index) Build(doc *cellosaurus.Document, batchSize int) (int, error) {
	const op = errors.Op("index.Build")

	if batchSize <= 0 {
		batchSize = 1000
	}

	skipped := errors.NewSkipCounter("indexing cell lines")
	batch := i.index.NewBatch()
	indexed := 0

	for _, line := range doc.CellLines() {
		d := DocFor(line)
		if d.Accession == "" {
			skipped.Skip(nil, strings.Join(d.Names, ", "))
			continue
		}
		if err := batch.Index(d.Accession, d); err != nil {
			return indexed, errors.E(op, errors.KindIndex, err, "failed to batch document "+d.Accession)
		}
		indexed++

		if batch.Size() >= batchSize {
			if err := i.index.Batch(batch); err != nil {
				return indexed, errors.E(op, errors.KindIndex, err, "failed to flush batch")
			}
			batch = i.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return indexed, errors.E(op, errors.KindIndex, err, "failed to flush final batch")
		}
	}

	skipped.Report()
	return indexed, nil
}

// Search performs a ranked full-text search.
func (i *Index) Search(queryStr string, limit int) (*Result, error) {
	const op = errors.Op("index.Search")

	if limit <= 0 {
		limit = 20
	}

	q := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"accession", "names", "category"}

	res, err := i.index.Search(req)
	if err != nil {
		return nil, errors.E(op, errors.KindIndex, err, "search failed")
	}

	result := &Result{Total: res.Total}
	for _, hit := range res.Hits {
		h := Hit{Accession: hit.ID, Score: hit.Score}
		if category, ok := hit.Fields["category"].(string); ok {
			h.Category = category
		}
		switch names := hit.Fields["names"].(type) {
		case string:
			h.Name = names
		case []interface{}:
			if len(names) > 0 {
				if name, ok := names[0].(string); ok {
					h.Name = name
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}
	return result, nil
}

// DocCount returns the number of indexed records.
func (i *Index) DocCount() (uint64, error) {
	return i.index.DocCount()
}

// Close closes the underlying index.
func (i *Index) Close() error {
	return i.index.Close()
}
