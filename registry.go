package testbed

import (
	"github.com/ohager/signum-smartc-testbed/types"
)

// SelectContract makes the contract at the given address the current one for
// every query that targets Current(). Selecting an address that matches no
// deployment fails with *InvalidContractAddressError and leaves the current
// selection unchanged.
func (t *Testbed) SelectContract(address uint64) error {
	if _, err := t.resolve(At(address)); err != nil {
		return err
	}

	t.current = address
	t.hasCurrent = true
	t.engine.SelectContract(address)

	return nil
}

// CurrentContract returns the address of the currently selected contract:
// the most recently deployed, or the last successfully selected one. It
// fails before the first deployment.
func (t *Testbed) CurrentContract() (uint64, error) {
	if !t.hasCurrent {
		return 0, &InvalidContractAddressError{}
	}
	return t.current, nil
}

// resolve maps a target to a deployed contract record. Explicit addresses
// are looked up by a linear scan (deployed contracts are typically few);
// Current() resolves through the selection. Both an unknown address and an
// empty deployment list fail with *InvalidContractAddressError.
func (t *Testbed) resolve(target Target) (*types.Contract, error) {
	address := target.address
	if !target.explicit {
		if !t.hasCurrent {
			return nil, &InvalidContractAddressError{}
		}
		address = t.current
	}

	for _, c := range t.engine.Contracts() {
		if c.Address == address {
			contract := c
			return &contract, nil
		}
	}

	return nil, &InvalidContractAddressError{
		Address:  address,
		Explicit: target.explicit,
	}
}
