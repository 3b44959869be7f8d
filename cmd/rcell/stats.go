package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the loaded document",
	Long:  `Count records by category and by sex across the whole document.`,
	RunE:  runStats,
}

var statsFormat string

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "table", "Output format (table|json)")
}

func runStats(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	stats := doc.Stats()

	switch statsFormat {
	case "json":
		return writeJSON(stats)

	case "table":
		fmt.Printf("Cell lines: %d\n\n", stats.CellLines)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tCOUNT")
		for _, category := range sortedKeys(stats.ByCategory) {
			fmt.Fprintf(w, "%s\t%d\n", category, stats.ByCategory[category])
		}
		fmt.Fprintln(w, "\nSEX\tCOUNT")
		for _, sex := range sortedKeys(stats.BySex) {
			fmt.Fprintf(w, "%s\t%d\n", sex, stats.BySex[sex])
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown format: %s (want table|json)", statsFormat)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
