// Package cmd implements the intake subcommands. Commands depend on the
// application only through the Interface so they can be tested with fakes.
package cmd

import (
	"github.com/rs/zerolog"

	"github.com/hearthops/intake/pkg/syncer"
)

// Interface is the slice of the application that commands need.
type Interface interface {
	Logger() *zerolog.Logger
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
	NewSyncer(dryRun bool) (*syncer.Syncer, error)
}
