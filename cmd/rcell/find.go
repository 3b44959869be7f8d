package main

import (
	"fmt"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/query"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <term> [term...]",
	Short: "Scan all record text for exact substrings",
	Long: `Scan the text of every record for the given terms and print the
records containing at least one of them. The scan covers element text
only, never attribute values, and it is exact and case-sensitive.

This is a linear scan of the whole document. For ranked, case-insensitive
search use 'rcell search' with a built index.`,
	Example: `  rcell find "Erythroleukemia"
  rcell find "Mus musculus" "Rattus norvegicus"
  rcell find --first "HeLa"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

var (
	findFirst    bool
	findFormat   string
	findLimit    int
	findNoHeader bool
)

func init() {
	findCmd.Flags().BoolVar(&findFirst, "first", false, "Stop at the first match in document order")
	findCmd.Flags().StringVarP(&findFormat, "format", "f", "table", "Output format (table|tsv|json|accession)")
	findCmd.Flags().IntVarP(&findLimit, "limit", "l", 0, "Maximum results to print (0 = all)")
	findCmd.Flags().BoolVar(&findNoHeader, "no-header", false, "Omit header in table/tsv output")
}

func runFind(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	records := doc.CellLines()

	if findFirst {
		record, found, err := query.FindFirst(records, args...)
		if err != nil {
			printError("Find failed: %v", err)
			return err
		}
		if !found {
			printInfo("No match")
			return nil
		}
		return writeRecords([]*cellosaurus.CellLine{record}, findFormat, findNoHeader)
	}

	matched, err := query.FindAll(records, args...)
	if err != nil {
		printError("Find failed: %v", err)
		return err
	}

	if findLimit > 0 && len(matched) > findLimit {
		matched = matched[:findLimit]
	}

	if err := writeRecords(matched, findFormat, findNoHeader); err != nil {
		return err
	}

	if !quiet && findFormat == "table" {
		fmt.Printf("\n%d record(s) matched\n", len(matched))
	}
	return nil
}
