package main

import (
	"github.com/jimvine/rcellosaurus/internal/query"
	"github.com/jimvine/rcellosaurus/internal/validator"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter cell lines by field value",
	Long: `Filter cell-line records against the fixed field vocabulary.

Each --where clause has the form field:mode:term. Mode is one of equals,
contains, or starts-with. Repeating --where chains the clauses, so every
record in the output satisfies all of them. Repeating the term inside one
clause is not supported from the CLI; use chained clauses instead.

Matching is exact and case-sensitive. Run 'rcell fields' for the full
field list.`,
	Example: `  rcell filter --where sex:equals:Female
  rcell filter --where category:contains:hybrid
  rcell filter --where species-accession:equals:9606 --where sex:equals:Male
  rcell filter --where name:starts-with:HeLa --format accession`,
	RunE: runFilter,
}

var (
	filterWhere    []string
	filterFormat   string
	filterLimit    int
	filterNoHeader bool
)

func init() {
	filterCmd.Flags().StringArrayVarP(&filterWhere, "where", "w", nil, "Filter clause field:mode:term (repeatable, clauses chain)")
	filterCmd.Flags().StringVarP(&filterFormat, "format", "f", "table", "Output format (table|tsv|json|accession)")
	filterCmd.Flags().IntVarP(&filterLimit, "limit", "l", 0, "Maximum results to print (0 = all)")
	filterCmd.Flags().BoolVar(&filterNoHeader, "no-header", false, "Omit header in table/tsv output")
	filterCmd.MarkFlagRequired("where")
}

func runFilter(cmd *cobra.Command, args []string) error {
	specs := make([]query.Spec, 0, len(filterWhere))
	for _, clause := range filterWhere {
		spec, err := validator.ParseWhere(clause)
		if err != nil {
			printError("Bad --where clause %q: %v", clause, err)
			return err
		}
		specs = append(specs, spec)
	}

	doc, err := loadDocument()
	if err != nil {
		return err
	}

	records, err := query.FilterDocument(doc, specs...)
	if err != nil {
		printError("Filter failed: %v", err)
		return err
	}

	if filterLimit > 0 && len(records) > filterLimit {
		records = records[:filterLimit]
	}

	if err := writeRecords(records, filterFormat, filterNoHeader); err != nil {
		return err
	}

	printDebug("%d record(s) matched", len(records))
	return nil
}
