package model

import (
	"encoding/json"
)

// Log is the normalized representation of a chain event log. Topic fields
// hold a 0x-prefixed 32-byte word, or the empty string when the topic is
// absent from the log.
type Log struct {
	FirstTopic  string `json:"first_topic"`
	SecondTopic string `json:"second_topic,omitempty"`
	ThirdTopic  string `json:"third_topic,omitempty"`
	FourthTopic string `json:"fourth_topic,omitempty"`
	Data        string `json:"data"`
	AddressHash string `json:"address_hash"`
	BlockNumber uint64 `json:"block_number"`
	BlockHash   string `json:"block_hash"`
	Index       uint64 `json:"index"`
	TxHash      string `json:"transaction_hash"`
}

// MarshalJSON ensures Log is encoded with stable field names.
func (l Log) MarshalJSON() ([]byte, error) {
	type Alias Log
	return json.Marshal(Alias(l))
}

// UnmarshalJSON decodes a Log from JSON.
func (l *Log) UnmarshalJSON(data []byte) error {
	type Alias Log
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Log(a)
	return nil
}
