package testbed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testbed "github.com/ohager/signum-smartc-testbed"
	"github.com/ohager/signum-smartc-testbed/engine/simulator"
	"github.com/ohager/signum-smartc-testbed/examples/testcontract"
	"github.com/ohager/signum-smartc-testbed/types"
)

const (
	senderID    uint64 = 1234
	recipientID uint64 = 4321
)

func loadSampleContract(t *testing.T, tb *testbed.Testbed, percentage int64) uint64 {
	t.Helper()

	address, err := tb.LoadContract(testcontract.Source, testbed.Initializers{
		"percentage": percentage,
		"text":       "sim",
	})
	require.NoError(t, err)

	return address
}

func TestRunScenarioAdvancesToTargetHeight(t *testing.T) {
	tb := testbed.New()
	loadSampleContract(t, tb, 20)

	scenario := []types.Transaction{
		{BlockHeight: 3, Amount: 100, Sender: senderID, Recipient: recipientID},
	}
	require.NoError(t, tb.RunScenario(scenario))

	assert.Equal(t, uint64(5), tb.Engine().CurrentHeight())
}

func TestRunScenarioRejectionLeavesChainUntouched(t *testing.T) {
	tb := testbed.New()
	loadSampleContract(t, tb, 20)

	scenario := []types.Transaction{
		{BlockHeight: 1, Amount: -100, Sender: senderID, Recipient: recipientID},
	}
	err := tb.RunScenario(scenario)
	require.Error(t, err)

	assert.Equal(t, uint64(0), tb.Engine().CurrentHeight())
	assert.Empty(t, tb.GetTransactions())
}

func TestForwardPercentage(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	amount := int64(10_2000_0000) // 10.2 SIGNA
	scenario := []types.Transaction{
		{
			BlockHeight: 1,
			Amount:      amount,
			Sender:      senderID,
			Recipient:   address,
			MessageHex:  testcontract.ForwardPercentageMessage(recipientID),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	// the call is included at height 2, the contract's reply recorded there
	sent, err := tb.GetTransactionsSentByContract(2, testbed.Current())
	require.NoError(t, err)
	require.Len(t, sent, 1)

	forwarded := amount * 20 / 100
	assert.Equal(t, recipientID, sent[0].Recipient)
	assert.Equal(t, forwarded, sent[0].Amount)

	account, err := tb.GetAccount(recipientID)
	require.NoError(t, err)
	assert.Equal(t, forwarded, account.Balance)
}

func TestIndependentDeploymentsFromSameSource(t *testing.T) {
	tb := testbed.New()

	first, err := tb.LoadContract(testcontract.Source, testbed.Initializers{"percentage": 20})
	require.NoError(t, err)
	second, err := tb.LoadContract(testcontract.Source, testbed.Initializers{"percentage": 10})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	firstValue, err := tb.GetContractMemoryValue("percentage", testbed.At(first))
	require.NoError(t, err)
	secondValue, err := tb.GetContractMemoryValue("percentage", testbed.At(second))
	require.NoError(t, err)

	assert.Equal(t, int64(20), firstValue)
	assert.Equal(t, int64(10), secondValue)

	// the most recent deployment is current
	current, err := tb.CurrentContract()
	require.NoError(t, err)
	assert.Equal(t, second, current)

	currentValue, err := tb.GetContractMemoryValue("percentage", testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(10), currentValue)
}

func TestSelectContract(t *testing.T) {
	tb := testbed.New()
	first := loadSampleContract(t, tb, 20)
	second := loadSampleContract(t, tb, 10)

	require.NoError(t, tb.SelectContract(first))

	value, err := tb.GetContractMemoryValue("percentage", testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(20), value)

	// selecting an unknown address fails and keeps the selection
	err = tb.SelectContract(second + 100)
	var invalidErr *testbed.InvalidContractAddressError
	require.ErrorAs(t, err, &invalidErr)

	current, err := tb.CurrentContract()
	require.NoError(t, err)
	assert.Equal(t, first, current)
}

func TestResolveWithoutDeployment(t *testing.T) {
	tb := testbed.New()

	_, err := tb.GetContract(testbed.Current())
	var invalidErr *testbed.InvalidContractAddressError
	require.ErrorAs(t, err, &invalidErr)

	_, err = tb.GetContract(testbed.At(999000))
	require.ErrorAs(t, err, &invalidErr)
}

func TestUpdatePercentagePermissions(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	// a stranger's update is silently ignored by the contract
	scenario := []types.Transaction{
		{
			BlockHeight: 1,
			Amount:      0,
			Sender:      senderID,
			Recipient:   address,
			MessageHex:  testcontract.UpdatePercentageMessage(45),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	value, err := tb.GetContractMemoryValue("percentage", testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(20), value)

	// the creator's update sticks, clamped to 0..100
	scenario = []types.Transaction{
		{
			BlockHeight: 4,
			Amount:      0,
			Sender:      simulator.CreatorID,
			Recipient:   address,
			MessageHex:  testcontract.UpdatePercentageMessage(145),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	value, err = tb.GetContractMemoryValue("percentage", testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(100), value)
}

func TestContractMap(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	entries, err := tb.GetContractMap(testbed.Current())
	require.NoError(t, err)
	assert.Empty(t, entries)

	scenario := []types.Transaction{
		{
			BlockHeight: 1,
			Sender:      senderID,
			Recipient:   address,
			MessageHex:  testcontract.SetMapValueMessage(7, 42),
		},
		{
			BlockHeight: 1,
			Sender:      senderID,
			Recipient:   address,
			MessageHex:  testcontract.SetMapValueMessage(8, 43),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	value, err := tb.GetContractMapValue(testcontract.MapKeyExample, 7, testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	entries, err = tb.GetContractMapValues(testcontract.MapKeyExample, testbed.Current())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, types.MapEntry{K1: 1, K2: 7, Value: 42}, entries[0])
	assert.Equal(t, types.MapEntry{K1: 1, K2: 8, Value: 43}, entries[1])
}

func TestAbsentDefaultsAreDistinct(t *testing.T) {
	tb := testbed.New()
	loadSampleContract(t, tb, 20)

	// a map cell never written reads as zero, not as an error
	value, err := tb.GetContractMapValue(99, 99, testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)

	// a memory variable never declared is a distinguishable absence
	_, err = tb.GetContractMemoryValue("no_such_variable", testbed.Current())
	var notFound *testbed.MemoryVariableNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no_such_variable", notFound.VarName)
}

func TestAccountAndTransactionLookups(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	_, err := tb.GetAccount(777777)
	var accountErr *testbed.AccountNotFoundError
	require.ErrorAs(t, err, &accountErr)

	_, err = tb.GetTransactionByID(777777)
	var txErr *testbed.TransactionNotFoundError
	require.ErrorAs(t, err, &txErr)

	scenario := []types.Transaction{
		{BlockHeight: 1, Amount: 5000, Sender: senderID, Recipient: address},
	}
	require.NoError(t, tb.RunScenario(scenario))

	first := tb.GetTransaction(0)
	assert.Equal(t, int64(5000), first.Amount)

	byID, err := tb.GetTransactionByID(first.TxID)
	require.NoError(t, err)
	assert.Equal(t, first, *byID)

	assert.Panics(t, func() {
		tb.GetTransaction(len(tb.GetTransactions()))
	})
}

func TestQueriesAreIdempotent(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	scenario := []types.Transaction{
		{
			BlockHeight: 1,
			Amount:      3_0000_0000,
			Sender:      senderID,
			Recipient:   address,
			MessageHex:  testcontract.ForwardPercentageMessage(recipientID),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	memoryA, err := tb.GetContractMemory(testbed.Current())
	require.NoError(t, err)
	memoryB, err := tb.GetContractMemory(testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, memoryA, memoryB)

	assert.Equal(t, tb.GetTransactions(), tb.GetTransactions())
}

func TestPullFunds(t *testing.T) {
	tb := testbed.New()
	address := loadSampleContract(t, tb, 20)

	funding := int64(10_0000_0000)
	scenario := []types.Transaction{
		// plain transfer, ignored by the contract but credited
		{BlockHeight: 1, Amount: funding, Sender: senderID, Recipient: address},
		{
			BlockHeight: 2,
			Sender:      simulator.CreatorID,
			Recipient:   address,
			MessageHex:  testcontract.PullFundsMessage(),
		},
	}
	require.NoError(t, tb.RunScenario(scenario))

	balance, err := tb.GetContractBalance(testbed.Current())
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	creator, err := tb.GetAccount(simulator.CreatorID)
	require.NoError(t, err)
	assert.Equal(t, funding, creator.Balance)
}
