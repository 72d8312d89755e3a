package transfer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"transferScope/internal/model"
)

// TokenRepository is the persistence layer for token descriptors.
type TokenRepository interface {
	FindByContractAddress(ctx context.Context, addressHash string) (model.Token, bool, error)
	Update(ctx context.Context, token model.Token, params model.TokenMetadataParams) error
}

// MetadataRetriever resolves on-chain token properties for a contract.
type MetadataRetriever interface {
	FetchFunctionsOf(ctx context.Context, addressHash string) (model.TokenMetadataParams, error)
}

// Updater refreshes a token's descriptor when a transfer mints or burns
// supply. Its failures are fatal to the calling batch: a swallowed refresh
// error would mask a metadata-consistency bug.
type Updater struct {
	repo      TokenRepository
	retriever MetadataRetriever
	logger    *zap.Logger
}

// NewUpdater builds an Updater.
func NewUpdater(repo TokenRepository, retriever MetadataRetriever, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{repo: repo, retriever: retriever, logger: logger}
}

// RefreshBurned refreshes the token descriptor for every transfer whose
// endpoint is the burn address. Contracts are refreshed once per batch.
func (u *Updater) RefreshBurned(ctx context.Context, transfers []model.TokenTransfer) error {
	refreshed := make(map[string]struct{})
	for _, tr := range transfers {
		if !tr.Touches(ZeroAddress) {
			continue
		}
		if _, ok := refreshed[tr.TokenContractAddressHash]; ok {
			continue
		}
		if err := u.Refresh(ctx, tr.TokenContractAddressHash); err != nil {
			return err
		}
		refreshed[tr.TokenContractAddressHash] = struct{}{}
	}
	return nil
}

// Refresh fetches current metadata for a contract and updates its stored
// token record.
func (u *Updater) Refresh(ctx context.Context, addressHash string) error {
	params, err := u.retriever.FetchFunctionsOf(ctx, addressHash)
	if err != nil {
		return fmt.Errorf("fetch token metadata %s: %w", addressHash, err)
	}

	token, ok, err := u.repo.FindByContractAddress(ctx, addressHash)
	if err != nil {
		return fmt.Errorf("find token %s: %w", addressHash, err)
	}
	if !ok {
		u.logger.Warn("token not found for refresh", zap.String("contract_address_hash", addressHash))
		return nil
	}

	if err := u.repo.Update(ctx, token, params); err != nil {
		return fmt.Errorf("update token %s: %w", addressHash, err)
	}

	u.logger.Debug("token metadata refreshed",
		zap.String("contract_address_hash", addressHash),
		zap.String("symbol", params.Symbol),
	)
	return nil
}
