package simulator

import (
	"github.com/ohager/signum-smartc-testbed/types"
)

// Environment is the view a running program has of its own contract and of
// the chain: memory, map store, balance and outgoing transfers. All mutations
// go through it so the simulator can keep snapshots consistent.
type Environment interface {
	// Address returns the contract's own deployment address.
	Address() uint64

	// Creator returns the id of the account that deployed the contract.
	Creator() uint64

	// Balance returns the contract account's current balance.
	Balance() int64

	// Memory returns the value bound to a memory variable, or zero if the
	// variable has never been assigned.
	Memory(name string) int64

	// SetMemory binds a memory variable. Assigning a name outside the
	// declared globals appends it to the memory snapshot, which is how
	// function-scoped shadows become visible.
	SetMemory(name string, value int64)

	// MapValue returns the map cell at (k1, k2), or zero if unset.
	MapValue(k1, k2 int64) int64

	// SetMapValue writes the map cell at (k1, k2), creating or overwriting.
	SetMapValue(k1, k2, value int64)

	// Send queues an outgoing transfer from the contract. The transaction is
	// stamped with the height of the block being forged and becomes visible
	// in the transaction log one block later.
	Send(recipient uint64, amount int64)

	// SendMessage is Send with an attached message payload.
	SendMessage(recipient uint64, amount int64, messageHex string)
}

// A Program is the executable behavior of a contract, registered under the
// source's "#program name" and instantiated once per deployment.
//
// Globals lists the contract's declared variables in declaration order; it
// seeds the memory snapshot before constant initializers are applied.
// Execute runs once per forged block, in contract-deployment order, against
// the transactions included in that block and addressed to the contract.
type Program interface {
	Globals() []string
	Execute(env Environment, incoming []types.Transaction)
}

// A Factory builds a fresh Program instance for one deployment.
type Factory func() Program

// A Registry maps program names to factories. Registration happens at init
// time; lookups happen at deployment.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty program registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register binds a program name to a factory. Registering the same name
// twice panics, mirroring the database/sql driver convention.
func (r *Registry) Register(name string, factory Factory) {
	if _, exists := r.factories[name]; exists {
		panic("simulator: program " + name + " registered twice")
	}
	r.factories[name] = factory
}

// New instantiates the program registered under name.
func (r *Registry) New(name string) (Program, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

var defaultRegistry = NewRegistry()

// Register adds a program to the default registry used by simulators that
// were not given an explicit one.
func Register(name string, factory Factory) {
	defaultRegistry.Register(name, factory)
}
