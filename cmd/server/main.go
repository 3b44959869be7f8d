// Command server is a standalone entrypoint for the rcellosaurus REST
// API, for deployments that do not need the full CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jimvine/rcellosaurus/internal/api"
	"github.com/jimvine/rcellosaurus/internal/cellosaurus"
	"github.com/jimvine/rcellosaurus/internal/config"
	"github.com/jimvine/rcellosaurus/internal/index"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		port        = flag.Int("port", 0, "Server port (default: from config)")
		host        = flag.String("host", "", "Server host (default: from config)")
		docPath     = flag.String("document", "", "Cellosaurus XML path (default: from config)")
		indexPath   = flag.String("index", "", "Full-text index path (default: from config)")
		configPath  = flag.String("config", "", "Configuration file path")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rcellosaurus server %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		os.Exit(0)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.GetConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *docPath != "" {
		cfg.DocumentPath = *docPath
	}
	if *indexPath != "" {
		cfg.Index.Path = *indexPath
	}

	log.Printf("Loading document from %s...", cfg.DocumentPath)
	doc, err := cellosaurus.LoadFile(cfg.DocumentPath)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}
	log.Printf("Loaded %d cell line(s)", doc.Stats().CellLines)

	var idx *index.Index
	if cfg.Index.Enabled {
		if _, err := os.Stat(cfg.Index.Path); err == nil {
			idx, err = index.Open(cfg.Index.Path)
			if err != nil {
				log.Printf("Failed to open index, search disabled: %v", err)
			} else {
				defer idx.Close()
			}
		} else {
			log.Printf("No index at %s, search disabled", cfg.Index.Path)
		}
	}

	server := api.NewServer(cfg, doc, idx)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
