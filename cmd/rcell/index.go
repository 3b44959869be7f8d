package main

import (
	"fmt"
	"os"

	"github.com/jimvine/rcellosaurus/internal/index"
	"github.com/jimvine/rcellosaurus/internal/paths"
	"github.com/jimvine/rcellosaurus/internal/ui"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the full-text search index",
	Long: `Build (or rebuild) the Bleve full-text index from the loaded document.
The index enables 'rcell search' and the /search API endpoint. Records
without a primary accession are skipped with a warning count.`,
	Example: `  rcell index
  rcell index --index-path ./cellosaurus.bleve --batch-size 5000`,
	RunE: runIndex,
}

var (
	indexPath      string
	indexBatchSize int
	indexForce     bool
)

func init() {
	indexCmd.Flags().StringVar(&indexPath, "index-path", "", "Index path (default: from config)")
	indexCmd.Flags().IntVar(&indexBatchSize, "batch-size", 0, "Indexing batch size (default: from config)")
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "Rebuild even if the index already exists")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := indexPath
	if path == "" {
		path = cfg.Index.Path
	}
	batchSize := indexBatchSize
	if batchSize == 0 {
		batchSize = cfg.Index.BatchSize
	}

	if _, err := os.Stat(path); err == nil {
		if !indexForce {
			printError("Index already exists: %s", path)
			fmt.Fprintf(os.Stderr, "\nUse --force to rebuild\n")
			return fmt.Errorf("index exists")
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove old index: %w", err)
		}
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	doc, err := loadDocument()
	if err != nil {
		return err
	}

	printInfo("Building index at %s", path)
	idx, err := index.Open(path)
	if err != nil {
		return err
	}
	defer idx.Close()

	var indexed int
	err = ui.Spin("Indexing", func() error {
		indexed, err = idx.Build(doc, batchSize)
		return err
	})
	if err != nil {
		printError("Indexing failed: %v", err)
		return err
	}

	printSuccess("Indexed %d record(s)", indexed)
	return nil
}
