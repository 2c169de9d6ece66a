package testbed

import (
	"github.com/ohager/signum-smartc-testbed/types"
)

// SendTransactionAndGetResponse submits a transaction batch addressed at the
// targeted contract and returns the transactions the contract emitted in
// response.
//
// Every input transaction's recipient is stamped with the contract's address
// and its blockheight with the chain's current height, overwriting whatever
// the caller supplied for those two fields. The chain then advances exactly
// two blocks: one to include the call, one to make the contract's reaction
// visible, which is read back at the resulting height minus one.
func (t *Testbed) SendTransactionAndGetResponse(
	transactions []types.Transaction,
	target Target,
) ([]types.Transaction, error) {
	c, err := t.resolve(target)
	if err != nil {
		return nil, err
	}

	height := t.engine.CurrentHeight()

	batch := make([]types.Transaction, len(transactions))
	copy(batch, transactions)
	for i := range batch {
		batch[i].Recipient = c.Address
		batch[i].BlockHeight = height
	}

	if err := t.RunScenario(batch); err != nil {
		return nil, err
	}

	return t.GetTransactionsSentByContract(t.engine.CurrentHeight()-1, At(c.Address))
}
