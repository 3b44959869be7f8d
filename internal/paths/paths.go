// Package paths resolves the default file locations used by the CLI,
// respecting tool-specific and XDG environment overrides.
package paths

import (
	"os"
	"path/filepath"
)

// Paths holds the base directories for configuration and data.
type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
}

// GetPaths returns all base paths respecting environment variables.
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("RCELL_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", "rcellosaurus"),
		DataDir:   getDir("RCELL_DATA_HOME", "XDG_DATA_HOME", ".local/share", "rcellosaurus"),
		CacheDir:  getDir("RCELL_CACHE_HOME", "XDG_CACHE_HOME", ".cache", "rcellosaurus"),
	}
}

func getDir(toolEnv, xdgEnv, defaultBase, appName string) string {
	if dir := os.Getenv(toolEnv); dir != "" {
		return dir
	}
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// GetDocumentPath returns the default location of the Cellosaurus XML
// release.
func GetDocumentPath() string {
	if path := os.Getenv("RCELL_DOCUMENT_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "cellosaurus.xml")
}

// GetIndexPath returns the default location of the full-text index,
// placed next to the document for easy backup.
func GetIndexPath() string {
	if path := os.Getenv("RCELL_INDEX_PATH"); path != "" {
		return path
	}
	doc := GetDocumentPath()
	base := filepath.Base(doc)
	name := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(doc), name+".bleve")
}

// GetExportPath returns the default location of the SQLite export.
func GetExportPath() string {
	if path := os.Getenv("RCELL_EXPORT_PATH"); path != "" {
		return path
	}
	doc := GetDocumentPath()
	base := filepath.Base(doc)
	name := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(doc), name+".db")
}

// EnsureDirectories creates the base directories if missing.
func EnsureDirectories() error {
	p := GetPaths()
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
