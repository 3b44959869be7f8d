package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jimvine/rcellosaurus/internal/index"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Ranked full-text search over the built index",
	Long: `Search the Bleve full-text index built by 'rcell index'.

Unlike filter and find, this search is analyzed: terms are lowercased
and tokenized, results are relevance-ranked, and field qualifiers like
category:"Cancer cell line" are supported by the query string syntax.`,
	Example: `  rcell search "erythroleukemia"
  rcell search 'sex:Female hela'
  rcell search "mus musculus" --limit 5 --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchLimit     int
	searchFormat    string
	searchIndexPath string
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum results to return")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "table", "Output format (table|json|accession)")
	searchCmd.Flags().StringVar(&searchIndexPath, "index-path", "", "Index path (default: from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	indexPath := searchIndexPath
	if indexPath == "" {
		indexPath = cfg.Index.Path
	}
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		printError("Index not found at %s", indexPath)
		fmt.Fprintf(os.Stderr, "\nBuild it first:\n  rcell index\n")
		return fmt.Errorf("index not found")
	}

	idx, err := index.Open(indexPath)
	if err != nil {
		return err
	}
	defer idx.Close()

	result, err := idx.Search(strings.Join(args, " "), searchLimit)
	if err != nil {
		printError("Search failed: %v", err)
		return err
	}

	switch searchFormat {
	case "json":
		return writeJSON(result)

	case "accession":
		for _, hit := range result.Hits {
			fmt.Println(hit.Accession)
		}
		return nil

	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ACCESSION\tNAME\tCATEGORY\tSCORE")
		for _, hit := range result.Hits {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n", hit.Accession, hit.Name, hit.Category, hit.Score)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("\n%d hit(s) of %d total\n", len(result.Hits), result.Total)
		}
		return nil

	default:
		return fmt.Errorf("unknown format: %s (want table|json|accession)", searchFormat)
	}
}
