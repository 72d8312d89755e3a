package model

// ClassifyError records a classification failure for a log line.
type ClassifyError struct {
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"transaction_hash"`
	LogIndex    uint64 `json:"log_index"`
	AddressHash string `json:"address_hash"`
	FirstTopic  string `json:"first_topic"`
	Error       string `json:"error"`
}
