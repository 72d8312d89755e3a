package transfer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroAddress is the burn address: transfers from it are mints, transfers
// to it are burns.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Signatures holds the topic0 hashes the classifier recognizes.
type Signatures struct {
	// Transfer(address,address,uint256) — shared by ERC-20 and ERC-721.
	Transfer string
	// Deposit(address,uint256) — wrapped-asset mint.
	Deposit string
	// Withdrawal(address,uint256) — wrapped-asset burn.
	Withdrawal string
}

// DefaultSignatures returns the canonical event signature hashes.
func DefaultSignatures() Signatures {
	return Signatures{
		Transfer:   "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		Deposit:    "0xe1fffcc4923d04b559f4d29a8bfc6cda04eb5b0d3c460751c2402c5c5cc9109c",
		Withdrawal: "0x7fcf532c15f0a6db0bd6d0e038bea71d30d808c7d98cb3bf7268a95bf5081b65",
	}
}

// Normalize lowercases the signature hashes and validates each one as a
// 32-byte hex word.
func (s Signatures) Normalize() (Signatures, error) {
	out := Signatures{}
	for _, entry := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"transfer", s.Transfer, &out.Transfer},
		{"deposit", s.Deposit, &out.Deposit},
		{"withdrawal", s.Withdrawal, &out.Withdrawal},
	} {
		value := strings.ToLower(strings.TrimSpace(entry.value))
		data, err := hexutil.Decode(value)
		if err != nil {
			return Signatures{}, fmt.Errorf("invalid %s signature: %w", entry.name, err)
		}
		if len(data) != 32 {
			return Signatures{}, fmt.Errorf("invalid %s signature length: %d", entry.name, len(data))
		}
		*entry.dst = value
	}
	return out, nil
}

// Matches reports whether topic0 equals any recognized signature.
func (s Signatures) Matches(topic0 string) bool {
	topic0 = strings.ToLower(topic0)
	return topic0 == s.Transfer || topic0 == s.Deposit || topic0 == s.Withdrawal
}
