package types

// A MemoryEntry is one named variable binding in a contract's memory
// snapshot. Entries are ordered: declared globals first, in declaration
// order, followed by function-scoped shadows in order of first assignment.
type MemoryEntry struct {
	VarName string
	Value   int64
}

// A Contract describes one deployed contract instance.
//
// Address is assigned by the engine at deployment and is stable for the
// contract's lifetime; it uniquely identifies the contract's memory and map
// state. Deploying the same source twice yields two contracts with
// independent addresses and state.
type Contract struct {
	Address uint64
	Creator uint64
	Memory  []MemoryEntry
}

// A MapEntry is a key-value triple in a contract's persistent map store.
// Uniqueness is on the (K1, K2) pair within one contract's map.
type MapEntry struct {
	K1    int64
	K2    int64
	Value int64
}
