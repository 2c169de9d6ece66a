package simulator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ohager/signum-smartc-testbed/types"
)

// wireTransaction mirrors one record of the scenario wire format. Numeric
// fields stay json.Number so that full-range 64-bit identifiers never pass
// through float64.
type wireTransaction struct {
	BlockHeight json.Number `json:"blockheight"`
	Amount      json.Number `json:"amount"`
	Sender      json.Number `json:"sender"`
	Recipient   json.Number `json:"recipient"`
	MessageHex  string      `json:"messageHex"`
	TxID        json.Number `json:"txid"`
}

// DecodeScenario parses a serialized scenario back into transaction records,
// preserving order. This is the engine-side inverse of types.EncodeScenario.
func DecodeScenario(raw []byte) ([]types.Transaction, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var wire []wireTransaction
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("malformed scenario: %w", err)
	}

	scenario := make([]types.Transaction, 0, len(wire))
	for i, w := range wire {
		height, err := parseUint(w.BlockHeight)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: blockheight: %w", i, err)
		}
		amount, err := parseInt(w.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: amount: %w", i, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("transaction %d: negative amount %d", i, amount)
		}
		sender, err := parseUint(w.Sender)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: sender: %w", i, err)
		}
		recipient, err := parseUint(w.Recipient)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: recipient: %w", i, err)
		}
		txID, err := parseUint(w.TxID)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: txid: %w", i, err)
		}

		scenario = append(scenario, types.Transaction{
			BlockHeight: height,
			Amount:      amount,
			Sender:      sender,
			Recipient:   recipient,
			MessageHex:  w.MessageHex,
			TxID:        txID,
		})
	}

	return scenario, nil
}

func parseUint(n json.Number) (uint64, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.ParseUint(n.String(), 10, 64)
}

func parseInt(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Int64()
}
