package transfer

import (
	"context"

	"go.uber.org/zap"

	"transferScope/internal/model"
)

// ParseResult collects the outcome of one batch. Tokens and Transfers
// mirror the input log order; Errors records the dropped logs.
type ParseResult struct {
	Tokens    []model.Token
	Transfers []model.TokenTransfer
	Errors    []model.ClassifyError
}

// Parser filters a log batch down to token transfer candidates, folds the
// classifier over them, and triggers the token state updater for transfers
// that touch the burn address.
type Parser struct {
	classifier *Classifier
	updater    *Updater
	logger     *zap.Logger
}

// NewParser builds a Parser. The updater is optional; when nil, burn
// transfers are decoded but no metadata refresh runs.
func NewParser(classifier *Classifier, updater *Updater, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		classifier: classifier,
		updater:    updater,
		logger:     logger,
	}
}

// Prefilter keeps only logs whose topic0 is a recognized signature,
// preserving relative order.
func (p *Parser) Prefilter(logs []*model.Log) []*model.Log {
	out := make([]*model.Log, 0, len(logs))
	for _, log := range logs {
		if log == nil || log.FirstTopic == "" {
			continue
		}
		if p.classifier.Signatures().Matches(log.FirstTopic) {
			out = append(out, log)
		}
	}
	return out
}

// Parse classifies a batch of logs. Classification failures are logged
// and recorded, never fatal: one bad log cannot abort the batch. A failed
// metadata refresh for a burn transfer is fatal and aborts the call.
func (p *Parser) Parse(ctx context.Context, logs []*model.Log) (ParseResult, error) {
	result := ParseResult{}

	for _, log := range p.Prefilter(logs) {
		token, tr, err := p.classifier.Classify(log)
		if err != nil {
			p.logger.Error("unknown token transfer",
				zap.Error(err),
				zap.Uint64("block_number", log.BlockNumber),
				zap.String("transaction_hash", log.TxHash),
				zap.Uint64("log_index", log.Index),
				zap.String("address_hash", log.AddressHash),
			)
			result.Errors = append(result.Errors, classifyErrorFromLog(log, err))
			continue
		}
		result.Tokens = append(result.Tokens, token)
		result.Transfers = append(result.Transfers, tr)
	}

	if p.updater != nil {
		if err := p.updater.RefreshBurned(ctx, result.Transfers); err != nil {
			return ParseResult{}, err
		}
	}

	return result, nil
}

func classifyErrorFromLog(log *model.Log, err error) model.ClassifyError {
	return model.ClassifyError{
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
		AddressHash: log.AddressHash,
		FirstTopic:  log.FirstTopic,
		Error:       err.Error(),
	}
}
