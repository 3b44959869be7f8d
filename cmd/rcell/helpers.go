package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/config"
	"github.com/jimvine/rcellosaurus/internal/ui"
)

// Color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Check if output is to terminal
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Apply color if terminal output and color enabled
func colorize(color, text string) string {
	if !noColor && isTerminal() && os.Getenv("NO_COLOR") == "" {
		return color + text + colorReset
	}
	return text
}

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorRed, "✗"), msg)
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s %s\n", colorize(colorGreen, "✓"), msg)
	}
}

// Print info message
func printInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s\n", colorize(colorCyan, msg))
	}
}

// Print warning message
func printWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorYellow, "⚠"), msg)
}

// Print debug message
func printDebug(format string, args ...interface{}) {
	if debug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorGray, "[DEBUG]"), msg)
	}
}

// loadConfig reads the config file resolved by the usual chain
// (RCELL_CONFIG, ./rcellosaurus.yaml, config dir).
func loadConfig() (*config.Config, error) {
	return config.Load(config.GetConfigPath())
}

// resolveDocumentPath picks the document location: the --document flag
// wins, then the configured path (which itself honors
// RCELL_DOCUMENT_PATH).
func resolveDocumentPath(cfg *config.Config) string {
	if documentPath != "" {
		return documentPath
	}
	return cfg.DocumentPath
}

// loadDocument loads the Cellosaurus release the command operates on.
func loadDocument() (*cellosaurus.Document, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := resolveDocumentPath(cfg)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		printError("Document not found at %s", path)
		fmt.Fprintf(os.Stderr, "\nDownload a Cellosaurus XML release and point rcell at it:\n")
		fmt.Fprintf(os.Stderr, "  rcell --document /path/to/cellosaurus.xml ...\n")
		fmt.Fprintf(os.Stderr, "  export RCELL_DOCUMENT_PATH=/path/to/cellosaurus.xml\n")
		return nil, fmt.Errorf("document not found")
	}

	printDebug("Loading document from %s", path)
	var doc *cellosaurus.Document
	err = ui.Spin("Loading document", func() error {
		doc, err = cellosaurus.LoadFile(path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// writeRecords renders a record list in the requested format.
func writeRecords(lines []*cellosaurus.CellLine, format string, noHeader bool) error {
	switch format {
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if !noHeader {
			fmt.Fprintln(w, "ACCESSION\tNAME\tCATEGORY\tSEX")
		}
		for _, line := range lines {
			category, _ := line.Category()
			sex, _ := line.Sex()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", line.Accession(), line.Name(), category, sex)
		}
		return w.Flush()

	case "tsv":
		if !noHeader {
			fmt.Println("accession\tname\tcategory\tsex")
		}
		for _, line := range lines {
			category, _ := line.Category()
			sex, _ := line.Sex()
			fmt.Printf("%s\t%s\t%s\t%s\n", line.Accession(), line.Name(), category, sex)
		}
		return nil

	case "accession":
		for _, line := range lines {
			fmt.Println(line.Accession())
		}
		return nil

	case "json":
		type record struct {
			Accession string `json:"accession"`
			Name      string `json:"name"`
			Category  string `json:"category,omitempty"`
			Sex       string `json:"sex,omitempty"`
		}
		records := make([]record, 0, len(lines))
		for _, line := range lines {
			r := record{Accession: line.Accession(), Name: line.Name()}
			r.Category, _ = line.Category()
			r.Sex, _ = line.Sex()
			records = append(records, r)
		}
		return writeJSON(records)

	default:
		return fmt.Errorf("unknown format: %s (want table|tsv|json|accession)", format)
	}
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens long prose fields for table output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
