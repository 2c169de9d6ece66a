// Package engine defines the narrow surface through which the testbed talks
// to a contract execution engine. The testbed assumes the engine is correct;
// it only orchestrates it.
package engine

import (
	"fmt"

	"github.com/ohager/signum-smartc-testbed/types"
)

// Engine is the method set of a contract execution engine.
//
// Implementations hold the whole simulated chain state: block height, pending
// transaction pool, transaction log, account ledger, deployed contracts with
// their memory, and the per-contract map store.
type Engine interface {
	// SubmitScenario appends a serialized transaction batch to the pending
	// pool. Malformed input is rejected with a *RejectionError and leaves
	// the pool untouched.
	SubmitScenario(serialized string) error

	// DeployContract compiles and deploys contract source under the engine's
	// fixed creator identity, returning the new contract's address. Every
	// call deploys an additional instance.
	DeployContract(source string) (uint64, error)

	// ForgeUntil advances the chain block by block until the given height is
	// reached, returning the resulting height. Heights at or below the
	// current one advance nothing.
	ForgeUntil(height uint64) (uint64, error)

	// CurrentHeight returns the height of the last forged block.
	CurrentHeight() uint64

	// Contracts returns all deployed contracts in deployment order, each with
	// a snapshot of its memory.
	Contracts() []types.Contract

	// Accounts returns the account ledger in order of first activity.
	Accounts() []types.Account

	// Transactions returns the transaction log in inclusion order.
	Transactions() []types.Transaction

	// MapEntries returns the map store of the given contract in write order.
	// A contract that never wrote to its map yields an empty result.
	MapEntries(contract uint64) []types.MapEntry

	// SelectContract marks the contract at the given address as the engine's
	// current one, reporting whether the address names a deployed contract.
	SelectContract(address uint64) bool
}

// A RejectionError is the engine's structured refusal of a submitted
// scenario: malformed serialization or an invalid transaction shape.
type RejectionError struct {
	Code        int
	Description string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("scenario rejected (code %d): %s", e.Code, e.Description)
}
