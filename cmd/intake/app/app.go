// Package app provides the application context and dependency management
// for the intake CLI: configuration, logging, and construction of the
// sync engine with its API clients.
package app

import (
	"github.com/rs/zerolog"

	"github.com/hearthops/intake/internal/sources/typeform"
	"github.com/hearthops/intake/internal/store/notion"
	"github.com/hearthops/intake/pkg/syncer"
)

// App represents the intake application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	return app, nil
}

// Version returns the version information.
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

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// NewSyncer builds a sync engine wired to the configured source and store.
// Fails fast on missing credentials, before any request is made.
func (a *App) NewSyncer(dryRun bool) (*syncer.Syncer, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	source, err := typeform.New(a.config.TypeformToken, a.config.TypeformFormID)
	if err != nil {
		return nil, err
	}
	store, err := notion.New(a.config.NotionToken, a.config.NotionDBID)
	if err != nil {
		return nil, err
	}

	return syncer.New(source, store, syncer.WithDryRun(dryRun))
}
