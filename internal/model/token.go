package model

import "math/big"

// Token types recognized by the classifier.
const (
	TokenTypeERC20  = "ERC-20"
	TokenTypeERC721 = "ERC-721"
)

// Token is a token descriptor derived from a classified log. One descriptor
// is emitted per transfer; deduplication is left to the consumer.
type Token struct {
	ContractAddressHash string `json:"contract_address_hash"`
	Type                string `json:"type"`
}

// TokenMetadataParams carries on-chain token properties returned by the
// metadata retriever.
type TokenMetadataParams struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply *big.Int `json:"total_supply,omitempty"`
}
