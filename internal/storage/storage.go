package storage

import "transferScope/internal/model"

// Sink receives classified batches for persistence.
type Sink interface {
	PutTokenBatch(tokens []model.Token) error
	PutTransferBatch(transfers []model.TokenTransfer) error
	PutErrorBatch(errs []model.ClassifyError) error
}
