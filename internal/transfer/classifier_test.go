package transfer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"transferScope/internal/model"
)

const testContract = "0x9999999999999999999999999999999999999999"

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	classifier, err := NewClassifier(DefaultSignatures())
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}
	return classifier
}

func topicFromAddress(addr common.Address) string {
	return common.BytesToHash(addr.Bytes()).Hex()
}

func buildLog(topic0, topic1, topic2, topic3, data string) *model.Log {
	return &model.Log{
		FirstTopic:  topic0,
		SecondTopic: topic1,
		ThirdTopic:  topic2,
		FourthTopic: topic3,
		Data:        data,
		AddressHash: testContract,
		BlockNumber: 12345,
		BlockHash:   "0xabc",
		Index:       1,
		TxHash:      "0xdef",
	}
}

func TestClassifyERC20Transfer(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	log := buildLog(sigs.Transfer, topicFromAddress(from), topicFromAddress(to), "",
		common.BigToHash(big.NewInt(1000)).Hex())

	token, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	if token.Type != model.TokenTypeERC20 || token.ContractAddressHash != testContract {
		t.Fatalf("token mismatch: %+v", token)
	}
	if tr.Amount == nil || tr.Amount.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("amount mismatch: %v", tr.Amount)
	}
	if tr.TokenID != nil {
		t.Fatalf("token id should not be set for erc20")
	}
	if tr.FromAddressHash != hexutil.Encode(from.Bytes()) || tr.ToAddressHash != hexutil.Encode(to.Bytes()) {
		t.Fatalf("address mismatch: %+v", tr)
	}
	if tr.BlockNumber != 12345 || tr.LogIndex != 1 || tr.TxHash != "0xdef" {
		t.Fatalf("log reference mismatch: %+v", tr)
	}
}

func TestClassifyERC20TransferEmptyData(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	log := buildLog(sigs.Transfer, topicFromAddress(from), topicFromAddress(to), "", "0x")

	_, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tr.Amount == nil || tr.Amount.Sign() != 0 {
		t.Fatalf("absent amount should default to zero: %v", tr.Amount)
	}
}

func TestClassifyDeposit(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	dst := common.HexToAddress("0x3333333333333333333333333333333333333333")
	log := buildLog(sigs.Deposit, topicFromAddress(dst), "", "",
		common.BigToHash(big.NewInt(500)).Hex())

	_, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tr.FromAddressHash != ZeroAddress {
		t.Fatalf("deposit should mint from zero address: %s", tr.FromAddressHash)
	}
	if tr.ToAddressHash != hexutil.Encode(dst.Bytes()) {
		t.Fatalf("to mismatch: %s", tr.ToAddressHash)
	}
	if tr.Amount.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("amount mismatch: %s", tr.Amount)
	}
	if tr.TokenType != model.TokenTypeERC20 {
		t.Fatalf("type mismatch: %s", tr.TokenType)
	}
}

func TestClassifyWithdrawal(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	src := common.HexToAddress("0x4444444444444444444444444444444444444444")
	log := buildLog(sigs.Withdrawal, topicFromAddress(src), "", "",
		common.BigToHash(big.NewInt(250)).Hex())

	_, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tr.FromAddressHash != hexutil.Encode(src.Bytes()) {
		t.Fatalf("from mismatch: %s", tr.FromAddressHash)
	}
	if tr.ToAddressHash != ZeroAddress {
		t.Fatalf("withdrawal should burn to zero address: %s", tr.ToAddressHash)
	}
}

func TestClassifyERC721IndexedTransfer(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	log := buildLog(sigs.Transfer,
		topicFromAddress(from),
		topicFromAddress(to),
		common.BigToHash(big.NewInt(42)).Hex(),
		"0x")

	token, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if token.Type != model.TokenTypeERC721 || tr.TokenType != model.TokenTypeERC721 {
		t.Fatalf("type mismatch: %+v", tr)
	}
	if tr.TokenID == nil || tr.TokenID.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("token id mismatch: %v", tr.TokenID)
	}
	if tr.Amount != nil {
		t.Fatalf("amount should not be set for erc721")
	}
}

func TestClassifyERC721PackedTransfer(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	payload := make([]byte, 0, 96)
	payload = append(payload, common.BytesToHash(from.Bytes()).Bytes()...)
	payload = append(payload, common.BytesToHash(to.Bytes()).Bytes()...)
	payload = append(payload, common.BigToHash(big.NewInt(77)).Bytes()...)

	log := buildLog(sigs.Transfer, "", "", "", hexutil.Encode(payload))

	_, tr, err := classifier.Classify(log)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if tr.TokenType != model.TokenTypeERC721 {
		t.Fatalf("type mismatch: %s", tr.TokenType)
	}
	if tr.FromAddressHash != hexutil.Encode(from.Bytes()) || tr.ToAddressHash != hexutil.Encode(to.Bytes()) {
		t.Fatalf("address mismatch: %+v", tr)
	}
	if tr.TokenID.Cmp(big.NewInt(77)) != 0 {
		t.Fatalf("token id mismatch: %s", tr.TokenID)
	}
}

func TestClassifyUnrecognizedShape(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")

	// Transfer signature with only topic1 present matches nothing.
	log := buildLog(sigs.Transfer, topicFromAddress(from), "", "",
		common.BigToHash(big.NewInt(9)).Hex())

	if _, _, err := classifier.Classify(log); err == nil {
		t.Fatalf("expected unrecognized shape error")
	}
}

func TestClassifyMalformedTopic(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	badTopic := "0x1111111111111111111111111111111111111111111111111111111111111111"

	log := buildLog(sigs.Transfer, badTopic, topicFromAddress(to), "",
		common.BigToHash(big.NewInt(1)).Hex())

	if _, _, err := classifier.Classify(log); err == nil {
		t.Fatalf("expected malformed topic error")
	}
}

func TestClassifyMalformedData(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	log := buildLog(sigs.Transfer, topicFromAddress(from), topicFromAddress(to), "", "0xdead")

	if _, _, err := classifier.Classify(log); err == nil {
		t.Fatalf("expected decode failure for malformed data")
	}
}

func TestClassifyPackedShortData(t *testing.T) {
	classifier := newTestClassifier(t)
	sigs := classifier.Signatures()

	// Only two of three expected words present.
	payload := make([]byte, 64)
	log := buildLog(sigs.Transfer, "", "", "", hexutil.Encode(payload))

	if _, _, err := classifier.Classify(log); err == nil {
		t.Fatalf("expected decode failure for short packed data")
	}
}
