package transfer

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WordKind selects how a 32-byte data word is interpreted.
type WordKind int

const (
	// WordUint256 decodes a word as an unsigned big-endian integer.
	WordUint256 WordKind = iota
	// WordAddress decodes a word as an address in its low 20 bytes.
	WordAddress
)

// Word is one decoded data value. Present is false when the payload was
// the empty-data sentinel and no value could be decoded.
type Word struct {
	Kind    WordKind
	Present bool
	Uint    *big.Int
	Address []byte
}

const emptyData = "0x"

// DecodeWords interprets a hex payload as tightly packed 32-byte words,
// one per requested kind. The empty-data sentinel yields an all-absent
// sequence of the requested arity. A payload shorter or longer than the
// kind list demands is a decode failure.
func DecodeWords(hexData string, kinds []WordKind) ([]Word, error) {
	if hexData == emptyData {
		words := make([]Word, len(kinds))
		for i, kind := range kinds {
			words[i] = Word{Kind: kind}
		}
		return words, nil
	}

	data, err := hexutil.Decode(hexData)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	if len(data) != 32*len(kinds) {
		return nil, fmt.Errorf("data length %d, want %d words", len(data), len(kinds))
	}

	words := make([]Word, len(kinds))
	for i, kind := range kinds {
		word := data[i*32 : (i+1)*32]
		decoded := Word{Kind: kind, Present: true}
		switch kind {
		case WordUint256:
			decoded.Uint = new(big.Int).SetBytes(word)
		case WordAddress:
			decoded.Address = word[12:]
		default:
			return nil, fmt.Errorf("unsupported word kind: %d", kind)
		}
		words[i] = decoded
	}
	return words, nil
}
