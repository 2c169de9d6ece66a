// Package testbed is a test harness over a simulated Signum blockchain. It
// loads SmartC contracts (optionally binding compile-time constants), replays
// scripted transaction scenarios through the engine's block-forging loop,
// and exposes query accessors over the resulting chain state: transactions,
// accounts, per-contract key-value maps, and contract memory.
//
// A Testbed owns one independent simulated chain starting from an empty
// ledger. All state is mutated in place by each call; tests sharing one
// instance must run serially, never in parallel.
package testbed

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ohager/signum-smartc-testbed/engine"
	"github.com/ohager/signum-smartc-testbed/engine/simulator"
	"github.com/ohager/signum-smartc-testbed/types"
)

// config is a set of configuration options for a testbed.
type config struct {
	logger zerolog.Logger
	engine engine.Engine
}

// Option is a function applying a change to the testbed config.
type Option func(*config)

// WithLogger sets the harness logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithEngine sets the execution engine. The default is a fresh in-memory
// simulator using the default program registry.
func WithEngine(e engine.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// Testbed drives one simulated chain and tracks the currently selected
// contract across deployments.
type Testbed struct {
	logger zerolog.Logger
	engine engine.Engine

	// addresses in deployment order
	deployed []uint64
	current  uint64
	// false until the first deployment
	hasCurrent bool
}

// New instantiates a testbed with the provided options. Every testbed starts
// from a clean, empty simulated ledger.
func New(opts ...Option) *Testbed {
	conf := config{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&conf)
	}

	if conf.engine == nil {
		conf.engine = simulator.New(simulator.WithLogger(conf.logger))
	}

	return &Testbed{
		logger: conf.logger,
		engine: conf.engine,
	}
}

// Engine exposes the underlying execution engine, mainly for assertions on
// raw engine state.
func (t *Testbed) Engine() engine.Engine {
	return t.engine
}

// RunScenario submits an ordered transaction batch to the engine's pending
// pool and forges blocks until every transaction in it has been processed
// and triggered contracts have had their execution slot: the chain advances
// to the scenario's highest scheduled height plus two, never beyond.
//
// If the engine rejects the scenario the error is returned immediately and
// no block is forged; retrying a malformed input cannot succeed.
func (t *Testbed) RunScenario(scenario []types.Transaction) error {
	target := types.MaxBlockHeight(scenario) + 2

	if err := t.engine.SubmitScenario(types.EncodeScenario(scenario)); err != nil {
		return errors.Wrap(err, "appending scenario")
	}

	height, err := t.engine.ForgeUntil(target)
	if err != nil {
		return errors.Wrap(err, "forging blocks")
	}

	t.logger.Debug().
		Int("transactions", len(scenario)).
		Uint64("height", height).
		Msg("scenario processed")

	return nil
}
