package types

// An Account is one entry in the simulated account ledger.
//
// Accounts are created implicitly by the engine on first transfer to an
// unseen id and are never destroyed.
type Account struct {
	ID      uint64
	Balance int64
}

// PlanckPerSigna is the fixed-point scale of amount fields: amounts carry
// eight implied decimal digits.
const PlanckPerSigna int64 = 100_000_000
