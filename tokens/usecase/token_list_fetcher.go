package usecase

import (
	"context"
	"crypto/md5"
	"fmt"
	"strconv"
	"sync"

	deliveryhttp "github.com/batchauction/dexclient/delivery/http"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/json"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/tokens/telemetry"
)

// GetTokenListFunc is a GetTokenList function signature.
type GetTokenListFunc func(ctx context.Context, tokenListURL string) ([]domain.TokenConfig, string, error)

// GetTokenList fetches the remote default token list.
// It returns the list together with the hash of the raw response.
func GetTokenList(ctx context.Context, tokenListURL string) ([]domain.TokenConfig, string, error) {
	data, err := deliveryhttp.Get(ctx, tokenListURL)
	if err != nil {
		return nil, "", err
	}

	var tokenList []domain.TokenConfig
	if err := json.Unmarshal(data, &tokenList); err != nil {
		return nil, "", err
	}

	return tokenList, fmt.Sprintf("%x", md5.Sum(data)), nil
}

// LoadTokensFunc consumes a freshly fetched default token list.
type LoadTokensFunc func(ctx context.Context, tokenList []domain.TokenConfig) error

// TokenListLoader is loader of the remote default token list passing results to the loadTokens function.
type TokenListLoader interface {
	// FetchAndUpdateTokens fetches the token list and loads it by calling loadTokens if there are changes.
	FetchAndUpdateTokens(ctx context.Context, loadTokens LoadTokensFunc) error
}

// TokenListHTTPFetcher is an implementation of TokenListLoader that fetches the token list over HTTP.
type TokenListHTTPFetcher struct {
	tokenListURL string
	getTokenList GetTokenListFunc

	mu            sync.Mutex
	lastFetchHash string
}

var _ TokenListLoader = &TokenListHTTPFetcher{}

// NewTokenListHTTPFetcher creates a new instance of TokenListHTTPFetcher.
func NewTokenListHTTPFetcher(tokenListURL string, getTokenList GetTokenListFunc) *TokenListHTTPFetcher {
	return &TokenListHTTPFetcher{
		tokenListURL: tokenListURL,
		getTokenList: getTokenList,
	}
}

// Fetch fetches the token list and reports whether it changed since the last fetch.
func (f *TokenListHTTPFetcher) Fetch(ctx context.Context) ([]domain.TokenConfig, bool, error) {
	tokenList, hash, err := f.getTokenList(ctx, f.tokenListURL)
	if err != nil {
		telemetry.TokenListFetchErrorCounter.Inc()
		return nil, false, FetchTokenListError{URL: f.tokenListURL, Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	changed := f.lastFetchHash != hash
	f.lastFetchHash = hash

	telemetry.TokenListFetchCounter.WithLabelValues(strconv.FormatBool(changed)).Inc()

	return tokenList, changed, nil
}

// FetchAndUpdateTokens fetches the token list and loads it by calling loadTokens.
// In case there were no changes since last fetch, it does not call loadTokens.
func (f *TokenListHTTPFetcher) FetchAndUpdateTokens(ctx context.Context, loadTokens LoadTokensFunc) error {
	tokenList, changed, err := f.Fetch(ctx)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	return loadTokens(ctx, tokenList)
}

// PersistTokenListFunc returns a LoadTokensFunc replacing the service list of every
// network in networkIDs with its part of the fetched list.
func PersistTokenListFunc(tokensUsecase mvc.TokensUsecase, networkIDs []uint64) LoadTokensFunc {
	return func(ctx context.Context, tokenList []domain.TokenConfig) error {
		for _, networkID := range networkIDs {
			if err := tokensUsecase.PersistTokens(ctx, networkID, domain.TokensByNetwork(networkID, tokenList)); err != nil {
				return err
			}
		}
		return nil
	}
}
