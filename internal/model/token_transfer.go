package model

import "math/big"

// TokenTransfer is a decoded token movement. Exactly one of Amount and
// TokenID is set: Amount for ERC-20, TokenID for ERC-721.
type TokenTransfer struct {
	TokenContractAddressHash string   `json:"token_contract_address_hash"`
	FromAddressHash          string   `json:"from_address_hash"`
	ToAddressHash            string   `json:"to_address_hash"`
	TokenType                string   `json:"token_type"`
	Amount                   *big.Int `json:"amount,omitempty"`
	TokenID                  *big.Int `json:"token_id,omitempty"`
	BlockNumber              uint64   `json:"block_number"`
	BlockHash                string   `json:"block_hash"`
	LogIndex                 uint64   `json:"log_index"`
	TxHash                   string   `json:"transaction_hash"`
}

// Touches reports whether either endpoint of the transfer is the given
// address.
func (t TokenTransfer) Touches(address string) bool {
	return t.FromAddressHash == address || t.ToAddressHash == address
}
