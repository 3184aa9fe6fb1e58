package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitelint"
	"sitelint/internal/commands/site"
)

var (
	contentDir string
	pattern    string
	recursive  bool
	workers    int
	schemaFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "sitelint",
	Short: "Validate and index markdown content collections",
	Long: `sitelint parses Jekyll-style markdown trees, validates each document's
front matter against the field schema for its kind, and builds the
collection index (by category, by author, chronological).

A malformed or invalid document never aborts the run: every failure is
reported per document and the rest of the collection is still indexed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps the outcome onto the process exit
// code: 0 on success, 1 when documents failed validation, 2 on runtime errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, site.ErrCheckFailed) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&contentDir, "content-dir", "c", "content", "path to the content tree")
	rootCmd.PersistentFlags().StringVarP(&pattern, "pattern", "p", "*.md", "glob filter for discovered files")
	rootCmd.PersistentFlags().BoolVarP(&recursive, "recursive", "r", true, "walk nested directories such as _posts")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "parse/validate worker count (0 = default)")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "path to a custom field schema (JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}

// newModule builds the runtime from the persistent flags.
func newModule() (*sitelint.Module, error) {
	cfg := sitelint.DefaultConfig()
	cfg.Content.Dir = contentDir
	cfg.Content.Pattern = pattern
	cfg.Content.Recursive = recursive
	cfg.Content.Workers = workers
	cfg.Logging.Level = logLevel
	cfg.Logging.Format = logFormat

	if schemaFile != "" {
		definition, err := loadSchemaFile(schemaFile)
		if err != nil {
			return nil, err
		}
		cfg.Content.Schema = definition
	}

	return sitelint.New(cfg)
}

func loadSchemaFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	var definition map[string]any
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	return definition, nil
}
