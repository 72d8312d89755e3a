package transfer

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var zeroPrefix = make([]byte, 12)

// TruncateTopic converts a 32-byte topic word into a canonical 20-byte
// address string. An absent topic resolves to the zero address. The word
// must carry a 12-byte zero prefix; anything else is a malformed topic.
func TruncateTopic(topic string) (string, error) {
	if topic == "" {
		return ZeroAddress, nil
	}

	data, err := hexutil.Decode(topic)
	if err != nil {
		return "", fmt.Errorf("invalid topic: %w", err)
	}
	if len(data) != 32 {
		return "", fmt.Errorf("topic length %d", len(data))
	}
	if !bytes.Equal(data[:12], zeroPrefix) {
		return "", fmt.Errorf("topic is not a padded address: %s", topic)
	}

	return EncodeAddress(data[12:]), nil
}

// EncodeAddress formats a 20-byte value as a 0x-prefixed lowercase hex
// string. The caller must supply exactly 20 bytes.
func EncodeAddress(raw []byte) string {
	return hexutil.Encode(raw)
}
