package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"transferScope/internal/model"
)

// Store provides Postgres persistence for tokens and token transfers. It
// satisfies transfer.TokenRepository.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertTokens inserts or updates token descriptors.
func (s *Store) UpsertTokens(ctx context.Context, tokens []model.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, token := range tokens {
		batch.Queue(`
			INSERT INTO tokens (contract_address_hash, type, created_at, updated_at)
			VALUES ($1, $2, now(), now())
			ON CONFLICT (contract_address_hash)
			DO UPDATE SET
				type = EXCLUDED.type,
				updated_at = now()
		`,
			token.ContractAddressHash,
			token.Type,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range tokens {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertTransfers inserts or updates token transfers keyed by transaction
// hash and log index.
func (s *Store) UpsertTransfers(ctx context.Context, transfers []model.TokenTransfer) error {
	if len(transfers) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tr := range transfers {
		var amount, tokenID *string
		if tr.Amount != nil {
			v := tr.Amount.String()
			amount = &v
		}
		if tr.TokenID != nil {
			v := tr.TokenID.String()
			tokenID = &v
		}
		batch.Queue(`
			INSERT INTO token_transfers (
				transaction_hash, log_index, block_number, block_hash,
				token_contract_address_hash, from_address_hash, to_address_hash,
				token_type, amount, token_id, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
			ON CONFLICT (transaction_hash, log_index)
			DO UPDATE SET
				block_number = EXCLUDED.block_number,
				block_hash = EXCLUDED.block_hash,
				token_contract_address_hash = EXCLUDED.token_contract_address_hash,
				from_address_hash = EXCLUDED.from_address_hash,
				to_address_hash = EXCLUDED.to_address_hash,
				token_type = EXCLUDED.token_type,
				amount = EXCLUDED.amount,
				token_id = EXCLUDED.token_id,
				updated_at = now()
		`,
			tr.TxHash,
			int64(tr.LogIndex),
			int64(tr.BlockNumber),
			tr.BlockHash,
			tr.TokenContractAddressHash,
			tr.FromAddressHash,
			tr.ToAddressHash,
			tr.TokenType,
			amount,
			tokenID,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range transfers {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// FindByContractAddress returns the stored token for a contract address.
func (s *Store) FindByContractAddress(ctx context.Context, addressHash string) (model.Token, bool, error) {
	if addressHash == "" {
		return model.Token{}, false, fmt.Errorf("contract address required")
	}
	var token model.Token
	row := s.pool.QueryRow(ctx, `
		SELECT contract_address_hash, type FROM tokens WHERE contract_address_hash = $1
	`, addressHash)
	if err := row.Scan(&token.ContractAddressHash, &token.Type); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Token{}, false, nil
		}
		return model.Token{}, false, err
	}
	return token, true, nil
}

// Update writes refreshed metadata to a token record.
func (s *Store) Update(ctx context.Context, token model.Token, params model.TokenMetadataParams) error {
	if token.ContractAddressHash == "" {
		return fmt.Errorf("contract address required")
	}
	var supply *string
	if params.TotalSupply != nil {
		v := params.TotalSupply.String()
		supply = &v
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE tokens
		SET name = $2, symbol = $3, decimals = $4, total_supply = $5, updated_at = now()
		WHERE contract_address_hash = $1
	`,
		token.ContractAddressHash,
		params.Name,
		params.Symbol,
		int16(params.Decimals),
		supply,
	)
	return err
}

// ListTokenAddresses returns every stored token contract address.
func (s *Store) ListTokenAddresses(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT contract_address_hash FROM tokens ORDER BY contract_address_hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]string, 0)
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}
