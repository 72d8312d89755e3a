package transfer

import (
	"fmt"
	"math/big"
	"strings"

	"transferScope/internal/model"
)

// Classifier maps a log's topic signature and topic-presence pattern to
// one of the known transfer shapes and decodes it.
type Classifier struct {
	sigs   Signatures
	shapes []shape
}

// shape pairs a structural predicate with its decode strategy. Shapes are
// evaluated in order; the first match wins.
type shape struct {
	name   string
	match  func(sigs Signatures, log *model.Log) bool
	decode func(c *Classifier, log *model.Log) (model.Token, model.TokenTransfer, error)
}

// NewClassifier builds a Classifier for the given signature set.
func NewClassifier(sigs Signatures) (*Classifier, error) {
	normalized, err := sigs.Normalize()
	if err != nil {
		return nil, err
	}
	return &Classifier{
		sigs: normalized,
		shapes: []shape{
			{
				name: "erc20 transfer",
				match: func(sigs Signatures, log *model.Log) bool {
					return topic0Is(log, sigs.Transfer) &&
						log.SecondTopic != "" && log.ThirdTopic != "" && log.FourthTopic == ""
				},
				decode: (*Classifier).decodeERC20Transfer,
			},
			{
				name: "erc20 deposit",
				match: func(sigs Signatures, log *model.Log) bool {
					return topic0Is(log, sigs.Deposit) &&
						log.SecondTopic != "" && log.ThirdTopic == "" && log.FourthTopic == ""
				},
				decode: (*Classifier).decodeERC20Deposit,
			},
			{
				name: "erc20 withdrawal",
				match: func(sigs Signatures, log *model.Log) bool {
					return topic0Is(log, sigs.Withdrawal) &&
						log.SecondTopic != "" && log.ThirdTopic == "" && log.FourthTopic == ""
				},
				decode: (*Classifier).decodeERC20Withdrawal,
			},
			{
				name: "erc721 indexed transfer",
				match: func(sigs Signatures, log *model.Log) bool {
					return topic0Is(log, sigs.Transfer) &&
						log.SecondTopic != "" && log.ThirdTopic != "" && log.FourthTopic != ""
				},
				decode: (*Classifier).decodeERC721IndexedTransfer,
			},
			{
				name: "erc721 packed transfer",
				match: func(sigs Signatures, log *model.Log) bool {
					return topic0Is(log, sigs.Transfer) &&
						log.SecondTopic == "" && log.ThirdTopic == "" && log.FourthTopic == "" &&
						log.Data != "" && log.Data != emptyData
				},
				decode: (*Classifier).decodeERC721PackedTransfer,
			},
		},
	}, nil
}

// Signatures returns the normalized signature set the classifier matches.
func (c *Classifier) Signatures() Signatures {
	return c.sigs
}

// Classify determines the transfer shape of a log and decodes it into a
// (Token, TokenTransfer) pair. All failures are recoverable: the caller
// drops the log and continues the batch.
func (c *Classifier) Classify(log *model.Log) (model.Token, model.TokenTransfer, error) {
	for _, s := range c.shapes {
		if s.match(c.sigs, log) {
			token, tr, err := s.decode(c, log)
			if err != nil {
				return model.Token{}, model.TokenTransfer{}, fmt.Errorf("%s: %w", s.name, err)
			}
			return token, tr, nil
		}
	}
	return model.Token{}, model.TokenTransfer{}, fmt.Errorf("unrecognized log shape: topic0 %s", log.FirstTopic)
}

func topic0Is(log *model.Log, sig string) bool {
	return strings.ToLower(log.FirstTopic) == sig
}

func (c *Classifier) decodeERC20Transfer(log *model.Log) (model.Token, model.TokenTransfer, error) {
	from, err := TruncateTopic(log.SecondTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	to, err := TruncateTopic(log.ThirdTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	amount, err := decodeAmount(log.Data)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	return c.buildERC20(log, from, to, amount)
}

func (c *Classifier) decodeERC20Deposit(log *model.Log) (model.Token, model.TokenTransfer, error) {
	to, err := TruncateTopic(log.SecondTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	amount, err := decodeAmount(log.Data)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	return c.buildERC20(log, ZeroAddress, to, amount)
}

func (c *Classifier) decodeERC20Withdrawal(log *model.Log) (model.Token, model.TokenTransfer, error) {
	from, err := TruncateTopic(log.SecondTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	amount, err := decodeAmount(log.Data)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	return c.buildERC20(log, from, ZeroAddress, amount)
}

func (c *Classifier) decodeERC721IndexedTransfer(log *model.Log) (model.Token, model.TokenTransfer, error) {
	from, err := TruncateTopic(log.SecondTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	to, err := TruncateTopic(log.ThirdTopic)
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}

	words, err := DecodeWords(log.FourthTopic, []WordKind{WordUint256})
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, fmt.Errorf("token id: %w", err)
	}
	tokenID := big.NewInt(0)
	if words[0].Present {
		tokenID = words[0].Uint
	}

	return c.buildERC721(log, from, to, tokenID)
}

func (c *Classifier) decodeERC721PackedTransfer(log *model.Log) (model.Token, model.TokenTransfer, error) {
	words, err := DecodeWords(log.Data, []WordKind{WordAddress, WordAddress, WordUint256})
	if err != nil {
		return model.Token{}, model.TokenTransfer{}, err
	}
	if !words[0].Present || !words[1].Present || !words[2].Present {
		return model.Token{}, model.TokenTransfer{}, fmt.Errorf("packed transfer fields absent")
	}

	from := EncodeAddress(words[0].Address)
	to := EncodeAddress(words[1].Address)
	return c.buildERC721(log, from, to, words[2].Uint)
}

func (c *Classifier) buildERC20(log *model.Log, from, to string, amount *big.Int) (model.Token, model.TokenTransfer, error) {
	token := model.Token{
		ContractAddressHash: log.AddressHash,
		Type:                model.TokenTypeERC20,
	}
	tr := model.TokenTransfer{
		TokenContractAddressHash: log.AddressHash,
		FromAddressHash:          from,
		ToAddressHash:            to,
		TokenType:                model.TokenTypeERC20,
		Amount:                   amount,
		BlockNumber:              log.BlockNumber,
		BlockHash:                log.BlockHash,
		LogIndex:                 log.Index,
		TxHash:                   log.TxHash,
	}
	return token, tr, nil
}

func (c *Classifier) buildERC721(log *model.Log, from, to string, tokenID *big.Int) (model.Token, model.TokenTransfer, error) {
	token := model.Token{
		ContractAddressHash: log.AddressHash,
		Type:                model.TokenTypeERC721,
	}
	tr := model.TokenTransfer{
		TokenContractAddressHash: log.AddressHash,
		FromAddressHash:          from,
		ToAddressHash:            to,
		TokenType:                model.TokenTypeERC721,
		TokenID:                  tokenID,
		BlockNumber:              log.BlockNumber,
		BlockHash:                log.BlockHash,
		LogIndex:                 log.Index,
		TxHash:                   log.TxHash,
	}
	return token, tr, nil
}

// decodeAmount reads a single uint256 word from the data payload. The
// empty-data sentinel yields a zero amount.
func decodeAmount(hexData string) (*big.Int, error) {
	words, err := DecodeWords(hexData, []WordKind{WordUint256})
	if err != nil {
		return nil, err
	}
	if !words[0].Present {
		return big.NewInt(0), nil
	}
	return words[0].Uint, nil
}
