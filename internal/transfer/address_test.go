package transfer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func TestTruncateTopicAbsent(t *testing.T) {
	address, err := TruncateTopic("")
	if err != nil {
		t.Fatalf("truncate absent: %v", err)
	}
	if address != ZeroAddress {
		t.Fatalf("expected zero address, got %s", address)
	}
}

func TestTruncateTopicPaddedAddress(t *testing.T) {
	addr := common.HexToAddress("0xAbCdEf0123456789aBcDeF0123456789AbCdEf01")
	topic := common.BytesToHash(addr.Bytes()).Hex()

	address, err := TruncateTopic(topic)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if address != hexutil.Encode(addr.Bytes()) {
		t.Fatalf("address mismatch: %s", address)
	}
	if len(address) != 42 {
		t.Fatalf("address length %d", len(address))
	}
}

func TestTruncateTopicNonZeroPrefix(t *testing.T) {
	topic := "0x1111111111111111111111111111111111111111111111111111111111111111"
	if _, err := TruncateTopic(topic); err == nil {
		t.Fatalf("expected error for non-zero prefix")
	}
}

func TestTruncateTopicWrongLength(t *testing.T) {
	if _, err := TruncateTopic("0x1234"); err == nil {
		t.Fatalf("expected error for short topic")
	}
}

func TestEncodeAddressRoundTrip(t *testing.T) {
	raw := common.HexToAddress("0x00000000000000000000000000000000DeaDBeef").Bytes()

	address := EncodeAddress(raw)
	if len(address) != 42 {
		t.Fatalf("encoded length %d", len(address))
	}

	decoded, err := hexutil.Decode(address)
	if err != nil {
		t.Fatalf("decode back: %v", err)
	}
	if common.BytesToAddress(decoded) != common.BytesToAddress(raw) {
		t.Fatalf("round-trip mismatch: %s", address)
	}
}
