package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/errors"
	"github.com/jimvine/rcellosaurus/internal/query"
	"github.com/jimvine/rcellosaurus/internal/validator"
)

// CellLineSummary is the list-form projection of a record.
type CellLineSummary struct {
	Accession string `json:"accession"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Sex       string `json:"sex,omitempty"`
}

// CellLineDetail is the full projection of a record.
type CellLineDetail struct {
	CellLineSummary
	Accessions   []string        `json:"accessions"`
	Names        []string        `json:"names"`
	Species      []SpeciesEntry  `json:"species,omitempty"`
	Diseases     []DiseaseEntry  `json:"diseases,omitempty"`
	Comments     []CommentEntry  `json:"comments,omitempty"`
	WebPages     []string        `json:"web_pages,omitempty"`
	References   []string        `json:"references,omitempty"`
	DerivedFrom  []RelativeEntry `json:"derived_from,omitempty"`
	SameOriginAs []RelativeEntry `json:"same_origin_as,omitempty"`
}

type SpeciesEntry struct {
	Name      string `json:"name"`
	Accession string `json:"accession"`
}

type DiseaseEntry struct {
	Name      string `json:"name"`
	Accession string `json:"accession"`
}

type CommentEntry struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type RelativeEntry struct {
	Name      string `json:"name"`
	Accession string `json:"accession"`
}

func summarize(line *cellosaurus.CellLine) CellLineSummary {
	s := CellLineSummary{
		Accession: line.Accession(),
		Name:      line.Name(),
	}
	s.Category, _ = line.Category()
	s.Sex, _ = line.Sex()
	return s
}

func detail(line *cellosaurus.CellLine) CellLineDetail {
	d := CellLineDetail{
		CellLineSummary: summarize(line),
		Accessions:      line.Accessions(),
		Names:           line.Names(),
		WebPages:        line.WebPages(),
		References:      line.References(),
	}
	d.Species = zipSpecies(line.Species(), line.SpeciesAccessions())
	d.Diseases = zipDiseases(line.Diseases(), line.DiseaseAccessions())
	for _, c := range line.CommentEntries() {
		d.Comments = append(d.Comments, CommentEntry{Category: c.Category, Text: c.Text})
	}
	d.DerivedFrom = zipRelatives(line.DerivedFrom(), line.DerivedFromAccessions())
	d.SameOriginAs = zipRelatives(line.SameOriginAs(), line.SameOriginAsAccessions())
	return d
}

func zipSpecies(names, accs []string) []SpeciesEntry {
	var out []SpeciesEntry
	for i := 0; i < len(names) && i < len(accs); i++ {
		out = append(out, SpeciesEntry{Name: names[i], Accession: accs[i]})
	}
	return out
}

func zipDiseases(names, accs []string) []DiseaseEntry {
	var out []DiseaseEntry
	for i := 0; i < len(names) && i < len(accs); i++ {
		out = append(out, DiseaseEntry{Name: names[i], Accession: accs[i]})
	}
	return out
}

func zipRelatives(names, accs []string) []RelativeEntry {
	var out []RelativeEntry
	for i := 0; i < len(names) && i < len(accs); i++ {
		out = append(out, RelativeEntry{Name: names[i], Accession: accs[i]})
	}
	return out
}

// handleFilter applies one or more where clauses (field:mode:term,
// repeatable; repeated clauses chain, narrowing the result set).
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var specs []query.Spec
	for _, clause := range q["where"] {
		spec, err := validator.ParseWhere(clause)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one where clause is required")
		return
	}

	records, err := query.FilterDocument(s.doc, specs...)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	limit := s.parseLimit(q.Get("limit"))
	if len(records) > limit {
		records = records[:limit]
	}

	summaries := make([]CellLineSummary, 0, len(records))
	for _, line := range records {
		summaries = append(summaries, summarize(line))
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": summaries,
		"total":   len(summaries),
	})
}

func (s *Server) handleGetCellLine(w http.ResponseWriter, r *http.Request) {
	accession := mux.Vars(r)["accession"]
	if err := validator.ValidateAccession(accession); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	line, ok := s.doc.CellLine(accession)
	if !ok {
		s.writeError(w, http.StatusNotFound, "cell line not found: "+accession)
		return
	}

	s.writeJSON(w, http.StatusOK, detail(line))
}

// handleFind runs the exact, case-sensitive free-text scan. Terms are
// OR-combined; first=true returns only the first match in document
// order.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	terms := q["term"]
	if len(terms) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one term is required")
		return
	}

	records := s.doc.CellLines()
	if q.Get("first") == "true" {
		record, found, err := query.FindFirst(records, terms...)
		if err != nil {
			s.writeQueryError(w, err)
			return
		}
		if !found {
			s.writeJSON(w, http.StatusOK, map[string]interface{}{
				"results": []CellLineSummary{},
				"total":   0,
			})
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"results": []CellLineSummary{summarize(record)},
			"total":   1,
		})
		return
	}

	matched, err := query.FindAll(records, terms...)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	limit := s.parseLimit(q.Get("limit"))
	if len(matched) > limit {
		matched = matched[:limit]
	}

	summaries := make([]CellLineSummary, 0, len(matched))
	for _, line := range matched {
		summaries = append(summaries, summarize(line))
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": summaries,
		"total":   len(summaries),
	})
}

// handleSearch runs the ranked index search, when the index is enabled.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.idx == nil {
		s.writeError(w, http.StatusServiceUnavailable, "full-text index is not enabled")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := s.parseLimit(r.URL.Query().Get("limit"))
	result, err := s.idx.Search(q, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"fields": query.Fields(),
		"modes":  []query.Mode{query.ModeEquals, query.ModeContains, query.ModeStartsWith},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.doc.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helpers

func (s *Server) parseLimit(raw string) int {
	limit := s.cfg.Server.DefaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	return limit
}

// writeQueryError maps bad query specifications to 400 and everything
// else to 500.
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	if errors.IsKind(err, errors.KindQuery) || errors.IsKind(err, errors.KindValidation) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errors.LogAndContinue("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
