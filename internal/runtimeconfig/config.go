package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrContentDirRequired      = errors.New("sitelint config: content directory is required")
	ErrWorkersInvalid          = errors.New("sitelint config: worker count cannot be negative")
	ErrLoggingProviderRequired = errors.New("sitelint config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("sitelint config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("sitelint config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("sitelint config: logging format is invalid")
)

// Config is the top-level runtime configuration for a collection run.
type Config struct {
	Content ContentConfig
	Logging LoggingConfig
}

// ContentConfig captures filesystem discovery and pipeline behaviour.
type ContentConfig struct {
	// Dir is the content tree root all identifiers are relative to.
	Dir string
	// Pattern filters discovered files by base name, e.g. "*.md".
	Pattern string
	// Recursive walks nested directories such as _posts.
	Recursive bool
	// Workers bounds the parse/validate worker pool. Zero selects the
	// scanner default.
	Workers int
	// Schema optionally extends the built-in field schema with a custom
	// definition validated against JSON Schema.
	Schema map[string]any
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults for a local content tree.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Content.Workers < 0 {
		return ErrWorkersInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "text", "json":
		return true
	default:
		return false
	}
}
