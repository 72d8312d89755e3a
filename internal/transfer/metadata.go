package transfer

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"transferScope/internal/chain"
	"transferScope/internal/model"
)

// TokenMetaCache caches fetched token metadata by contract address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMetadataParams
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMetadataParams)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMetadataParams, bool) {
	c.mu.RLock()
	params, ok := c.data[address]
	c.mu.RUnlock()
	return params, ok
}

func (c *TokenMetaCache) Set(address common.Address, params model.TokenMetadataParams) {
	c.mu.Lock()
	c.data[address] = params
	c.mu.Unlock()
}

// ChainRetriever resolves token metadata via eth_call introspection. It
// implements MetadataRetriever.
type ChainRetriever struct {
	chain        *chain.Client
	cache        *TokenMetaCache
	logger       *zap.Logger
	maxRetries   int
	retryBackoff time.Duration
}

// NewChainRetriever builds a ChainRetriever.
func NewChainRetriever(chainClient *chain.Client, maxRetries int, retryBackoff time.Duration, logger *zap.Logger) *ChainRetriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainRetriever{
		chain:        chainClient,
		cache:        NewTokenMetaCache(),
		logger:       logger,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
	}
}

// FetchFunctionsOf loads name/symbol/decimals/totalSupply for a token
// contract, using the in-memory cache when possible.
func (r *ChainRetriever) FetchFunctionsOf(ctx context.Context, addressHash string) (model.TokenMetadataParams, error) {
	if r.chain == nil {
		return model.TokenMetadataParams{}, fmt.Errorf("chain client is nil")
	}
	if !common.IsHexAddress(addressHash) {
		return model.TokenMetadataParams{}, fmt.Errorf("invalid contract address: %s", addressHash)
	}
	token := common.HexToAddress(addressHash)

	if params, ok := r.cache.Get(token); ok {
		return params, nil
	}

	var params model.TokenMetadataParams
	err := withRetry(ctx, r.maxRetries, r.retryBackoff, func(ctx context.Context) error {
		var err error
		params, err = r.fetch(ctx, token)
		if err != nil {
			r.logger.Warn("token metadata fetch failed", zap.String("token", token.Hex()), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return model.TokenMetadataParams{}, err
	}

	r.cache.Set(token, params)
	return params, nil
}

func (r *ChainRetriever) fetch(ctx context.Context, token common.Address) (model.TokenMetadataParams, error) {
	params := model.TokenMetadataParams{}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return params, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return params, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		msg := ethereum.CallMsg{To: &token, Data: data}
		resp, err := r.chain.CallContract(ctx, msg, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	values, err := call("decimals", stringABI)
	if err != nil {
		return params, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return params, err
	}
	params.Decimals = decimals

	if values, err := call("symbol", stringABI); err == nil {
		if symbol, ok := values[0].(string); ok {
			params.Symbol = symbol
		}
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			params.Symbol = symbol
		}
	} else {
		r.logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := call("name", stringABI); err == nil {
		if name, ok := values[0].(string); ok {
			params.Name = name
		}
	} else if values, err := call("name", bytes32ABI); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			params.Name = name
		}
	} else {
		r.logger.Debug("name call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := call("totalSupply", stringABI); err == nil {
		if supply, err := asBigInt(values[0]); err == nil {
			params.TotalSupply = supply
		}
	} else {
		r.logger.Debug("totalSupply call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	return params, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
