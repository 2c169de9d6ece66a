package testbed

import (
	"github.com/ohager/signum-smartc-testbed/types"
)

// GetContract returns the full record of the targeted contract, including a
// snapshot of its memory.
func (t *Testbed) GetContract(target Target) (*types.Contract, error) {
	return t.resolve(target)
}

// GetContractMemory returns the targeted contract's memory snapshot: named
// variable bindings in declaration order, function-scoped shadows included.
func (t *Testbed) GetContractMemory(target Target) ([]types.MemoryEntry, error) {
	c, err := t.resolve(target)
	if err != nil {
		return nil, err
	}
	return c.Memory, nil
}

// GetContractMemoryValue returns the value bound to the named memory
// variable. A name the contract never declared yields a soft
// *MemoryVariableNotFoundError, which is distinct from the variable holding
// zero.
func (t *Testbed) GetContractMemoryValue(name string, target Target) (int64, error) {
	c, err := t.resolve(target)
	if err != nil {
		return 0, err
	}

	for _, entry := range c.Memory {
		if entry.VarName == name {
			return entry.Value, nil
		}
	}

	return 0, &MemoryVariableNotFoundError{
		Contract: c.Address,
		VarName:  name,
	}
}

// GetContractMap returns all map entries of the targeted contract in write
// order. A contract that never wrote to its map yields an empty result; that
// is a valid state, not an error.
func (t *Testbed) GetContractMap(target Target) ([]types.MapEntry, error) {
	c, err := t.resolve(target)
	if err != nil {
		return nil, err
	}
	return t.engine.MapEntries(c.Address), nil
}

// GetContractMapValue returns the map cell at exactly (k1, k2). An unset
// cell is zero: that is the engine's semantic default for map storage, not a
// not-found signal, and deliberately differs from the memory-value accessor.
func (t *Testbed) GetContractMapValue(k1, k2 int64, target Target) (int64, error) {
	c, err := t.resolve(target)
	if err != nil {
		return 0, err
	}

	for _, entry := range t.engine.MapEntries(c.Address) {
		if entry.K1 == k1 && entry.K2 == k2 {
			return entry.Value, nil
		}
	}

	return 0, nil
}

// GetContractMapValues returns every map entry sharing the first key, in map
// order; empty if none.
func (t *Testbed) GetContractMapValues(k1 int64, target Target) ([]types.MapEntry, error) {
	c, err := t.resolve(target)
	if err != nil {
		return nil, err
	}

	var entries []types.MapEntry
	for _, entry := range t.engine.MapEntries(c.Address) {
		if entry.K1 == k1 {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// GetContractBalance returns the balance of the targeted contract's own
// account, or zero if the contract never held funds.
func (t *Testbed) GetContractBalance(target Target) (int64, error) {
	c, err := t.resolve(target)
	if err != nil {
		return 0, err
	}

	for _, account := range t.engine.Accounts() {
		if account.ID == c.Address {
			return account.Balance, nil
		}
	}

	return 0, nil
}

// GetAccount returns the account with the given id, across all accounts ever
// touched by a transaction. An unseen id yields a soft *AccountNotFoundError.
func (t *Testbed) GetAccount(id uint64) (*types.Account, error) {
	for _, account := range t.engine.Accounts() {
		if account.ID == id {
			result := account
			return &result, nil
		}
	}
	return nil, &AccountNotFoundError{ID: id}
}

// GetTransactions returns the engine's full transaction log in inclusion
// order.
func (t *Testbed) GetTransactions() []types.Transaction {
	return t.engine.Transactions()
}

// GetTransaction returns the transaction at the given position in the log.
// An out-of-range index is a caller error and panics.
func (t *Testbed) GetTransaction(index int) types.Transaction {
	return t.engine.Transactions()[index]
}

// GetTransactionByID returns the transaction with the given engine-assigned
// id, or a soft *TransactionNotFoundError.
func (t *Testbed) GetTransactionByID(id uint64) (*types.Transaction, error) {
	for _, tx := range t.engine.Transactions() {
		if tx.TxID == id {
			result := tx
			return &result, nil
		}
	}
	return nil, &TransactionNotFoundError{ID: id}
}

// GetTransactionsSentByContract returns the transactions recorded at exactly
// the given height whose sender is the targeted contract: the idiomatic way
// to read what a contract replied with.
func (t *Testbed) GetTransactionsSentByContract(blockHeight uint64, target Target) ([]types.Transaction, error) {
	c, err := t.resolve(target)
	if err != nil {
		return nil, err
	}

	var sent []types.Transaction
	for _, tx := range t.engine.Transactions() {
		if tx.BlockHeight == blockHeight && tx.Sender == c.Address {
			sent = append(sent, tx)
		}
	}

	return sent, nil
}
