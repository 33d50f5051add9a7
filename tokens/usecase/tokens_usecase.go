package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/json"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/log"
	"github.com/batchauction/dexclient/tokens/telemetry"
)

type subscriber struct {
	id uint64
	fn domain.TokenListSubscriber
}

type tokensUseCase struct {
	store     domain.KVStore
	overrides domain.TokenOverrides

	// writeMu serializes mutations so that the read-modify-write of persisted lists
	// does not interleave.
	writeMu sync.Mutex

	tokensMu          sync.RWMutex
	tokensByNetwork   map[uint64][]domain.TokenDetails
	addressNetworkSet map[string]struct{}

	subscribersMu    sync.Mutex
	subscribers      []subscriber
	nextSubscriberID uint64

	logger log.Logger
}

var _ mvc.TokensUsecase = &tokensUseCase{}

// NewTokensUsecase will create a new token registry backed by store.
// overrides may be nil.
func NewTokensUsecase(store domain.KVStore, overrides domain.TokenOverrides, logger log.Logger) *tokensUseCase {
	if overrides == nil {
		overrides = domain.TokenOverrides{}
	}

	return &tokensUseCase{
		store:     store,
		overrides: overrides,

		tokensByNetwork:   map[uint64][]domain.TokenDetails{},
		addressNetworkSet: map[string]struct{}{},

		logger: logger,
	}
}

// Initialize implements mvc.TokensUsecase.
func (t *tokensUseCase) Initialize(ctx context.Context, networkIDs []uint64, remoteDefaultList []domain.TokenConfig) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	merged := make([][]domain.TokenDetails, len(networkIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, networkID := range networkIDs {
		g.Go(func() error {
			// local lists first, they might be more up to date than the default list
			merged[i] = domain.MergeTokenLists(
				t.loadTokenList(ctx, networkID, domain.ServiceTokenList),
				t.loadTokenList(ctx, networkID, domain.UserTokenList),
				domain.TokensByNetwork(networkID, remoteDefaultList),
			)
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	t.tokensMu.Lock()
	defer t.tokensMu.Unlock()

	for i, networkID := range networkIDs {
		t.tokensByNetwork[networkID] = t.overrides.ApplyOverrides(networkID, merged[i])
		for _, token := range merged[i] {
			t.addressNetworkSet[domain.AddressNetworkKey(token.Address, networkID)] = struct{}{}
		}

		t.logger.Info("initialized token list", zap.Uint64("network_id", networkID), zap.Int("num_tokens", len(merged[i])))
	}

	return nil
}

// GetTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) GetTokens(networkID uint64) []domain.TokenDetails {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	return copyTokens(t.tokensByNetwork[networkID])
}

// HasToken implements mvc.TokensUsecase.
func (t *tokensUseCase) HasToken(networkID uint64, address string) bool {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	_, ok := t.addressNetworkSet[domain.AddressNetworkKey(address, networkID)]
	return ok
}

// AddToken implements mvc.TokensUsecase.
func (t *tokensUseCase) AddToken(ctx context.Context, networkID uint64, token domain.TokenDetails) error {
	return t.AddTokens(ctx, networkID, []domain.TokenDetails{token})
}

// AddTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) AddTokens(ctx context.Context, networkID uint64, tokens []domain.TokenDetails) error {
	t.writeMu.Lock()

	t.tokensMu.Lock()
	addedTokens := make([]domain.TokenDetails, 0, len(tokens))
	for _, token := range tokens {
		key := domain.AddressNetworkKey(token.Address, networkID)
		if _, ok := t.addressNetworkSet[key]; ok {
			continue
		}

		t.logger.Debug("added new token to user list", zap.Uint64("network_id", networkID), zap.String("address", token.Address))

		t.addressNetworkSet[key] = struct{}{}
		addedTokens = append(addedTokens, token)
	}

	if len(addedTokens) == 0 {
		t.tokensMu.Unlock()
		t.writeMu.Unlock()
		return nil
	}

	updated := domain.MergeTokenLists(t.tokensByNetwork[networkID], t.overrides.ApplyOverrides(networkID, addedTokens))
	t.tokensByNetwork[networkID] = updated
	t.tokensMu.Unlock()

	persistErr := t.persistNewUserTokens(ctx, networkID, addedTokens)
	t.writeMu.Unlock()

	t.TriggerSubscriptions(domain.TokenListUpdate{
		NetworkID: networkID,
		Tokens:    copyTokens(updated),
	})

	return persistErr
}

// PersistTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) PersistTokens(ctx context.Context, networkID uint64, tokenList []domain.TokenDetails) error {
	t.writeMu.Lock()

	userTokens := t.loadTokenList(ctx, networkID, domain.UserTokenList)

	// user additions always survive a service list refresh
	merged := domain.MergeTokenLists(
		t.overrides.ApplyOverrides(networkID, tokenList),
		t.overrides.ApplyOverrides(networkID, userTokens),
	)

	t.tokensMu.Lock()
	t.tokensByNetwork[networkID] = merged
	for _, token := range merged {
		t.addressNetworkSet[domain.AddressNetworkKey(token.Address, networkID)] = struct{}{}
	}
	t.tokensMu.Unlock()

	// the service slot holds the raw list, never the merged result
	persistErr := t.storeTokenList(ctx, networkID, domain.ServiceTokenList, tokenList)
	t.writeMu.Unlock()

	t.TriggerSubscriptions(domain.TokenListUpdate{
		NetworkID: networkID,
		Tokens:    copyTokens(tokenList),
	})

	return persistErr
}

// Subscribe implements mvc.TokensUsecase.
func (t *tokensUseCase) Subscribe(fn domain.TokenListSubscriber) (unsubscribe func()) {
	t.subscribersMu.Lock()
	defer t.subscribersMu.Unlock()

	id := t.nextSubscriberID
	t.nextSubscriberID++
	t.subscribers = append(t.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.subscribersMu.Lock()
			defer t.subscribersMu.Unlock()

			for i, s := range t.subscribers {
				if s.id == id {
					t.subscribers = append(t.subscribers[:i:i], t.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// TriggerSubscriptions implements mvc.TokensUsecase.
func (t *tokensUseCase) TriggerSubscriptions(update domain.TokenListUpdate) {
	t.subscribersMu.Lock()
	subscribers := make([]subscriber, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.subscribersMu.Unlock()

	for _, s := range subscribers {
		t.notify(s, update)
	}
}

func (t *tokensUseCase) notify(s subscriber, update domain.TokenListUpdate) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.SubscriberPanicCounter.Inc()
			t.logger.Error("token list subscriber panicked", zap.Uint64("network_id", update.NetworkID), zap.Any("panic", r))
		}
	}()

	s.fn(update)
}

// loadTokenList returns the list persisted under listType.
// Read and decode failures are logged and yield an empty list.
func (t *tokensUseCase) loadTokenList(ctx context.Context, networkID uint64, listType domain.TokenListType) []domain.TokenDetails {
	key := domain.TokenListStorageKey(networkID, listType)

	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		telemetry.CorruptedListCounter.WithLabelValues(strconv.FormatUint(networkID, 10), string(listType)).Inc()
		t.logger.Error("failed to read persisted token list", zap.String("key", key), zap.Error(err))
		return []domain.TokenDetails{}
	}
	if !ok || raw == "" {
		return []domain.TokenDetails{}
	}

	var tokens []domain.TokenDetails
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		telemetry.CorruptedListCounter.WithLabelValues(strconv.FormatUint(networkID, 10), string(listType)).Inc()
		t.logger.Error("corrupted persisted token list", zap.String("key", key), zap.Error(err))
		return []domain.TokenDetails{}
	}

	return tokens
}

func (t *tokensUseCase) persistNewUserTokens(ctx context.Context, networkID uint64, tokens []domain.TokenDetails) error {
	currentUserList := domain.MergeTokenLists(t.loadTokenList(ctx, networkID, domain.UserTokenList), tokens)
	return t.storeTokenList(ctx, networkID, domain.UserTokenList, currentUserList)
}

func (t *tokensUseCase) storeTokenList(ctx context.Context, networkID uint64, listType domain.TokenListType, tokens []domain.TokenDetails) error {
	key := domain.TokenListStorageKey(networkID, listType)

	if tokens == nil {
		tokens = []domain.TokenDetails{}
	}

	bz, err := json.Marshal(tokens)
	if err != nil {
		return PersistTokenListError{NetworkID: networkID, Key: key, Err: fmt.Errorf("marshal: %w", err)}
	}

	if err := t.store.Set(ctx, key, string(bz)); err != nil {
		telemetry.PersistErrorCounter.WithLabelValues(strconv.FormatUint(networkID, 10), string(listType)).Inc()
		t.logger.Error("failed to persist token list", zap.String("key", key), zap.Error(err))
		return PersistTokenListError{NetworkID: networkID, Key: key, Err: err}
	}

	return nil
}

func copyTokens(tokens []domain.TokenDetails) []domain.TokenDetails {
	result := make([]domain.TokenDetails, len(tokens))
	copy(result, tokens)
	return result
}
