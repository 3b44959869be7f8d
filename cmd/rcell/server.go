package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jimvine/rcellosaurus/internal/api"
	"github.com/jimvine/rcellosaurus/internal/index"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the REST API server",
	Long: `Start the HTTP API over the loaded document.

Endpoints under /api/v1: /cell-lines (filter), /cell-lines/{accession},
/find, /search (when an index exists), /fields, /stats. The document is
loaded once at startup and served read-only.`,
	Example: `  rcell server
  rcell server --port 3000 --host 0.0.0.0`,
	RunE: runAPIServer,
}

var (
	serverPort       int
	serverHost       string
	serverIndexPath  string
	serverEnableCORS bool
)

func init() {
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Port to listen on (default: from config)")
	serverCmd.Flags().StringVar(&serverHost, "host", "", "Host to bind to (default: from config)")
	serverCmd.Flags().StringVar(&serverIndexPath, "index-path", "", "Index path (default: from config)")
	serverCmd.Flags().BoolVar(&serverEnableCORS, "enable-cors", true, "Enable CORS for web access")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	cfg.Server.EnableCORS = serverEnableCORS

	doc, err := loadDocument()
	if err != nil {
		return err
	}
	stats := doc.Stats()
	printInfo("Loaded %d cell line(s)", stats.CellLines)

	// The index is optional; /search returns 503 without it.
	var idx *index.Index
	indexPath := serverIndexPath
	if indexPath == "" {
		indexPath = cfg.Index.Path
	}
	if cfg.Index.Enabled {
		if _, err := os.Stat(indexPath); err == nil {
			idx, err = index.Open(indexPath)
			if err != nil {
				printWarning("Failed to open index, search disabled: %v", err)
			} else {
				defer idx.Close()
				printInfo("Index: %s", indexPath)
			}
		} else {
			printWarning("No index at %s, search disabled (run 'rcell index')", indexPath)
		}
	}

	server := api.NewServer(cfg, doc, idx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		printSuccess("Server ready at http://%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		printInfo("\nShutting down server...")
	case err := <-serverErr:
		printError("Server error: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		printError("Server shutdown failed: %v", err)
		return err
	}

	printSuccess("Server stopped gracefully")
	return nil
}
