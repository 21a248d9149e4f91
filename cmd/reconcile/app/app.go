// Package app provides the application context and dependency management
// for the reconcile CLI. It centralizes configuration, logging, and engine
// construction behind a single App type.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/campushq/reconcile"
	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/policy"
)

// App represents the reconcile application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	engine reconcile.Engine
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Engine returns the reconciliation engine, creating it lazily if
// needed. Thread-safe; only one instance is created.
func (a *App) Engine(overlay policy.Overlay) (reconcile.Engine, error) {
	a.mu.RLock()
	if a.engine != nil {
		eng := a.engine
		a.mu.RUnlock()
		return eng, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}

	opts := []reconcile.Option{
		reconcile.WithLogger(a.logger),
		reconcile.WithDiffer(differ.New(
			differ.WithFuzzyMatching(!a.config.NoFuzzy),
			differ.WithRecency(!a.config.NoRecency),
		)),
	}
	if len(overlay) > 0 {
		opts = append(opts, reconcile.WithOperatorOverlay(overlay))
	}

	eng, err := reconcile.New(opts...)
	if err != nil {
		return nil, err
	}

	a.engine = eng
	return eng, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine instance (useful for testing).
func WithEngine(eng reconcile.Engine) Option {
	return func(a *App) error {
		a.engine = eng
		return nil
	}
}
