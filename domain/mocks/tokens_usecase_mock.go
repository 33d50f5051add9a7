package mocks

import (
	"context"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
)

var _ mvc.TokensUsecase = &TokensUsecaseMock{}

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface
type TokensUsecaseMock struct {
	InitializeFunc           func(ctx context.Context, networkIDs []uint64, remoteDefaultList []domain.TokenConfig) error
	GetTokensFunc            func(networkID uint64) []domain.TokenDetails
	HasTokenFunc             func(networkID uint64, address string) bool
	AddTokenFunc             func(ctx context.Context, networkID uint64, token domain.TokenDetails) error
	AddTokensFunc            func(ctx context.Context, networkID uint64, tokens []domain.TokenDetails) error
	PersistTokensFunc        func(ctx context.Context, networkID uint64, tokenList []domain.TokenDetails) error
	SubscribeFunc            func(fn domain.TokenListSubscriber) func()
	TriggerSubscriptionsFunc func(update domain.TokenListUpdate)
}

func (m *TokensUsecaseMock) Initialize(ctx context.Context, networkIDs []uint64, remoteDefaultList []domain.TokenConfig) error {
	if m.InitializeFunc != nil {
		return m.InitializeFunc(ctx, networkIDs, remoteDefaultList)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) GetTokens(networkID uint64) []domain.TokenDetails {
	if m.GetTokensFunc != nil {
		return m.GetTokensFunc(networkID)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) HasToken(networkID uint64, address string) bool {
	if m.HasTokenFunc != nil {
		return m.HasTokenFunc(networkID, address)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) AddToken(ctx context.Context, networkID uint64, token domain.TokenDetails) error {
	if m.AddTokenFunc != nil {
		return m.AddTokenFunc(ctx, networkID, token)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) AddTokens(ctx context.Context, networkID uint64, tokens []domain.TokenDetails) error {
	if m.AddTokensFunc != nil {
		return m.AddTokensFunc(ctx, networkID, tokens)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) PersistTokens(ctx context.Context, networkID uint64, tokenList []domain.TokenDetails) error {
	if m.PersistTokensFunc != nil {
		return m.PersistTokensFunc(ctx, networkID, tokenList)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) Subscribe(fn domain.TokenListSubscriber) func() {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(fn)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) TriggerSubscriptions(update domain.TokenListUpdate) {
	if m.TriggerSubscriptionsFunc != nil {
		m.TriggerSubscriptionsFunc(update)
		return
	}
	panic("unimplemented")
}
