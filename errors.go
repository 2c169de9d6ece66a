package testbed

import (
	"fmt"
)

// NotFoundError marks the soft "absent" conditions a test may legitimately
// assert on: a memory variable, account, or transaction that does not exist.
// These never indicate a harness failure.
type NotFoundError interface {
	isNotFoundError()
}

// InvalidContractAddressError indicates that a contract address matches no
// deployment. This is a hard failure: silently returning nothing would mask
// a test authoring mistake. It also covers resolving the current contract
// before anything was deployed.
type InvalidContractAddressError struct {
	Address uint64
	// Explicit is false when the failure came from resolving the current
	// selection rather than a caller-supplied address.
	Explicit bool
}

func (e *InvalidContractAddressError) Error() string {
	if !e.Explicit {
		return "invalid contract address: no contract deployed"
	}
	return fmt.Sprintf("invalid contract address %d", e.Address)
}

// AccountNotFoundError indicates that no account with the given id was ever
// touched by a transaction.
type AccountNotFoundError struct {
	ID uint64
}

func (e *AccountNotFoundError) isNotFoundError() {}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("could not find account with id %d", e.ID)
}

// TransactionNotFoundError indicates that no processed transaction carries
// the given id.
type TransactionNotFoundError struct {
	ID uint64
}

func (e *TransactionNotFoundError) isNotFoundError() {}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("could not find transaction with id %d", e.ID)
}

// MemoryVariableNotFoundError indicates that a contract declares no memory
// variable with the given name. It is distinct from the variable holding
// zero.
type MemoryVariableNotFoundError struct {
	Contract uint64
	VarName  string
}

func (e *MemoryVariableNotFoundError) isNotFoundError() {}

func (e *MemoryVariableNotFoundError) Error() string {
	return fmt.Sprintf("contract %d has no memory variable %q", e.Contract, e.VarName)
}

// InitializerValueError indicates a usage error in the initializers handed
// to LoadContract, reported before any compilation is attempted.
type InitializerValueError struct {
	Name   string
	Reason string
}

func (e *InitializerValueError) Error() string {
	return fmt.Sprintf("initializer %q: %s", e.Name, e.Reason)
}
