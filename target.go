package testbed

// A Target names the contract a query addresses: either an explicit
// deployment address or the currently selected contract. The zero value is
// the current contract.
type Target struct {
	address  uint64
	explicit bool
}

// Current targets the currently selected contract.
func Current() Target {
	return Target{}
}

// At targets the contract deployed at the given address.
func At(address uint64) Target {
	return Target{address: address, explicit: true}
}
