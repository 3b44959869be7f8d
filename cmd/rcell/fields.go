package main

import (
	"fmt"

	"github.com/jimvine/rcellosaurus/internal/query"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the filterable fields and match modes",
	RunE:  runFields,
}

var fieldsFormat string

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsFormat, "format", "f", "table", "Output format (table|json)")
}

func runFields(cmd *cobra.Command, args []string) error {
	fields := query.Fields()
	modes := []query.Mode{query.ModeEquals, query.ModeContains, query.ModeStartsWith}

	if fieldsFormat == "json" {
		return writeJSON(map[string]interface{}{
			"fields": fields,
			"modes":  modes,
		})
	}

	fmt.Println("Fields:")
	for _, field := range fields {
		fmt.Printf("  %s\n", field)
	}
	fmt.Println("\nModes:")
	for _, mode := range modes {
		fmt.Printf("  %s\n", mode)
	}
	return nil
}
