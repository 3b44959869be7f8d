package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor      bool
	quiet        bool
	verbose      bool
	debug        bool
	documentPath string
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "rcell",
	Short: "Cellosaurus cell-line registry query tool",
	Long: `rcell loads a Cellosaurus XML release and queries it from the command
line: structured filtering over a fixed field vocabulary, exact free-text
search, ranked full-text search, and export to SQLite.

Filtering is exact and case-sensitive. Chained --where clauses narrow the
result set; multiple terms inside one clause are alternatives.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Find cancer cell lines
  rcell filter --where category:equals:"Cancer cell line"

  # Chain clauses: female cancer cell lines
  rcell filter --where category:equals:"Cancer cell line" --where sex:equals:Female

  # Exact substring scan over all record text
  rcell find "Erythroleukemia"

  # Full record detail
  rcell show CVCL_0030

  # Ranked full-text search (needs 'rcell index' first)
  rcell search "hela contamination"`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&documentPath, "document", "", "Cellosaurus XML path (default: RCELL_DOCUMENT_PATH or config)")

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
