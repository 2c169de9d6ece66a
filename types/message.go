package types

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// MessageWords is the number of 64-bit argument words in a contract message.
const MessageWords = 4

// EncodeMessage packs up to four int64 argument words into the hexadecimal
// message payload format read by contracts: 32 bytes, little-endian words,
// zero padded. By convention the first word selects the contract method.
func EncodeMessage(args ...int64) string {
	buf := make([]byte, MessageWords*8)
	for i, arg := range args {
		if i >= MessageWords {
			break
		}
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(arg))
	}
	return hex.EncodeToString(buf)
}

// DecodeMessage unpacks a hexadecimal message payload into four int64 words.
// Payloads shorter than 32 bytes are zero padded; trailing partial words are
// an error.
func DecodeMessage(messageHex string) ([MessageWords]int64, error) {
	var words [MessageWords]int64

	raw, err := hex.DecodeString(messageHex)
	if err != nil {
		return words, errors.Wrap(err, "decoding message payload")
	}
	if len(raw)%8 != 0 || len(raw) > MessageWords*8 {
		return words, errors.Errorf("message payload has invalid length %d", len(raw))
	}

	for i := 0; i*8 < len(raw); i++ {
		words[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	return words, nil
}

// TextToLong folds a short text value into its int64 representation, the
// little-endian byte packing the engine uses for string constants. Texts
// longer than eight bytes do not fit a single memory cell.
func TextToLong(text string) (int64, error) {
	if len(text) > 8 {
		return 0, errors.Errorf("text %q exceeds 8 bytes", text)
	}
	var buf [8]byte
	copy(buf[:], text)
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
