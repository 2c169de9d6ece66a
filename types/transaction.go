package types

import (
	"bytes"
	"strconv"
)

// A Transaction is a single transfer record in the simulated chain.
//
// Identifier fields (Sender, Recipient, TxID) are full-range unsigned 64-bit
// Signum ids and Amount is an integer number of planck (1 SIGNA = 1e8 planck).
// On scenario input, BlockHeight schedules the transaction and TxID is unset;
// on engine output, TxID is assigned by the engine and BlockHeight is the
// height the transaction was recorded at.
type Transaction struct {
	BlockHeight uint64
	Amount      int64
	Sender      uint64
	Recipient   uint64
	MessageHex  string
	TxID        uint64
}

// MarshalJSON encodes the transaction in the engine's scenario wire format.
//
// Integer fields are written as unquoted decimal literals so that full-range
// 64-bit identifiers survive without floating-point rounding. Fields are
// emitted in a fixed order; messageHex and txid are omitted when unset.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"blockheight":`)
	buf.WriteString(strconv.FormatUint(t.BlockHeight, 10))
	buf.WriteString(`,"amount":`)
	buf.WriteString(strconv.FormatInt(t.Amount, 10))
	buf.WriteString(`,"sender":`)
	buf.WriteString(strconv.FormatUint(t.Sender, 10))
	buf.WriteString(`,"recipient":`)
	buf.WriteString(strconv.FormatUint(t.Recipient, 10))

	if t.MessageHex != "" {
		buf.WriteString(`,"messageHex":`)
		buf.WriteString(strconv.Quote(t.MessageHex))
	}

	if t.TxID != 0 {
		buf.WriteString(`,"txid":`)
		buf.WriteString(strconv.FormatUint(t.TxID, 10))
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// EncodeScenario serializes an ordered transaction batch into the scenario
// wire format consumed by the execution engine. The input order is preserved;
// it defines intra-height scheduling order.
func EncodeScenario(scenario []Transaction) string {
	var buf bytes.Buffer

	buf.WriteByte('[')
	for i, tx := range scenario {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, _ := tx.MarshalJSON()
		buf.Write(encoded)
	}
	buf.WriteByte(']')

	return buf.String()
}

// MaxBlockHeight returns the highest scheduled height in a scenario, or zero
// for an empty scenario.
func MaxBlockHeight(scenario []Transaction) uint64 {
	var max uint64
	for _, tx := range scenario {
		if tx.BlockHeight > max {
			max = tx.BlockHeight
		}
	}
	return max
}
