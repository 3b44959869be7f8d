package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jimvine/rcellosaurus/internal/export"
	"github.com/jimvine/rcellosaurus/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the document to a SQLite database",
	Long: `Flatten the loaded document into a relational SQLite database for
downstream SQL tooling.

Tables: cell_lines, accessions, names, comments, species, diseases,
relatives, web_pages, cross_references.`,
	Example: `  rcell export -o cellosaurus.db
  rcell export -o cellosaurus.db --batch-size 2000 --force`,
	RunE: runDBExport,
}

var (
	exportOutput    string
	exportBatchSize int
	exportForce     bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output database path (default: from config)")
	exportCmd.Flags().IntVar(&exportBatchSize, "batch-size", 0, "Rows per transaction (default: from config)")
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite an existing output file")
}

func runDBExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputPath := exportOutput
	if outputPath == "" {
		outputPath = cfg.Export.Path
	}
	batchSize := exportBatchSize
	if batchSize == 0 {
		batchSize = cfg.Export.BatchSize
	}

	if _, err := os.Stat(outputPath); err == nil {
		if !exportForce {
			printError("Output file already exists: %s", outputPath)
			fmt.Fprintf(os.Stderr, "\nUse --force to overwrite\n")
			return fmt.Errorf("output file exists")
		}
		if err := os.Remove(outputPath); err != nil {
			return fmt.Errorf("failed to remove old export: %w", err)
		}
	}

	doc, err := loadDocument()
	if err != nil {
		return err
	}

	printInfo("Exporting to %s", outputPath)
	db, err := export.Open(outputPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var exported int
	err = ui.Spin("Exporting", func() error {
		exported, err = db.Export(doc, batchSize)
		return err
	})
	if err != nil {
		os.Remove(outputPath)
		printError("Export failed: %v", err)
		return err
	}

	printSuccess("Exported %d record(s)", exported)

	if !quiet {
		counts, err := db.Counts()
		if err != nil {
			return err
		}
		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		fmt.Println()
		for _, table := range tables {
			fmt.Printf("%-18s %d\n", table, counts[table])
		}
	}
	return nil
}
