package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lemastero/mantis/module/component"
)

// EngineFactory builds a fresh Engine instance for each supervised run.
type EngineFactory func() (*Engine, error)

// Run supervises the block import engine. A fresh engine is built and
// started; when it throws an irrecoverable error (a catastrophic ledger
// failure, or a missing state node while re-download is disabled) the
// instance is torn down and a new one is built and started, re-executing the
// Start semantics: the fetcher is restarted from the current best block and
// the importer state is fresh. Any in-flight import of the failed instance
// is lost; the fetcher redelivers.
//
// Run blocks until the given context is cancelled (returning the context
// error) or the factory fails (returning its error).
func Run(ctx context.Context, log zerolog.Logger, factory EngineFactory) error {
	log = log.With().Str("component", "block_importer_supervisor").Logger()
	return component.RunComponent(ctx,
		func() (component.Component, error) {
			e, err := factory()
			if err != nil {
				return nil, fmt.Errorf("could not build block importer: %w", err)
			}
			return e, nil
		},
		func(err error) component.ErrorHandlingResult {
			log.Err(err).Msg("block importer failed, restarting")
			return component.ErrorHandlingRestart
		},
	)
}
