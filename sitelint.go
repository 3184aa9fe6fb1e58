package sitelint

import (
	"fmt"
	"os"
	"strings"

	"sitelint/internal/collection"
	"sitelint/internal/frontmatter"
	"sitelint/internal/index"
	"sitelint/internal/logging"
	"sitelint/internal/logging/gologger"
	"sitelint/internal/schema"
	"sitelint/pkg/interfaces"
)

// Option overrides a Module dependency during construction.
type Option func(*Module)

// WithLoggerProvider replaces the provider built from Config.Logging. Useful
// for tests and for embedding the runtime inside a host application that
// already owns a logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.logs = provider
		}
	}
}

// Module is the top level runtime façade: it wires the loader, validator,
// index and scanner from a single Config.
type Module struct {
	cfg     Config
	logs    interfaces.LoggerProvider
	idx     *index.Index
	scanner *collection.Scanner
}

// New constructs the runtime from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.logs == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.logs = provider
	}

	validatorOpts := []schema.Option{
		schema.WithLogger(logging.SchemaLogger(m.logs)),
	}
	if len(cfg.Content.Schema) > 0 {
		custom, err := schema.CompileCustomSchema(cfg.Content.Schema)
		if err != nil {
			return nil, err
		}
		validatorOpts = append(validatorOpts, schema.WithCustomSchema(custom))
	}
	validator := schema.NewValidator(validatorOpts...)

	loader := frontmatter.NewLoader(os.DirFS(cfg.Content.Dir), frontmatter.LoaderConfig{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
	})

	m.idx = index.New()

	scannerOpts := []collection.ScannerOption{
		collection.WithLogger(logging.CollectionLogger(m.logs)),
	}
	if cfg.Content.Workers > 0 {
		scannerOpts = append(scannerOpts, collection.WithWorkers(cfg.Content.Workers))
	}

	scanner, err := collection.NewScanner(loader, validator, m.idx, scannerOpts...)
	if err != nil {
		return nil, err
	}
	m.scanner = scanner

	return m, nil
}

// Scanner returns the configured collection scanner.
func (m *Module) Scanner() *collection.Scanner {
	return m.scanner
}

// Index returns the collection index the scanner populates.
func (m *Module) Index() *index.Index {
	return m.idx
}

// Logger returns a named logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	if m == nil || m.logs == nil {
		return logging.NoOp()
	}
	return m.logs.GetLogger(name)
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "noop":
		return noopProvider{}, nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
