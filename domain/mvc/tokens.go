package mvc

import (
	"context"

	"github.com/batchauction/dexclient/domain"
)

// TokensUsecase defines an interface for the token registry.
type TokensUsecase interface {
	// Initialize loads the persisted lists of every network and merges them with remoteDefaultList.
	Initialize(ctx context.Context, networkIDs []uint64, remoteDefaultList []domain.TokenConfig) error

	// GetTokens returns the merged token list of networkID. Empty for unknown networks.
	GetTokens(networkID uint64) []domain.TokenDetails

	// HasToken returns true if address is known on networkID.
	HasToken(networkID uint64, address string) bool

	// AddToken adds a single user token.
	AddToken(ctx context.Context, networkID uint64, token domain.TokenDetails) error

	// AddTokens adds user tokens not known yet, persisting them in the user list.
	AddTokens(ctx context.Context, networkID uint64, tokens []domain.TokenDetails) error

	// PersistTokens replaces the service list of networkID with tokenList.
	PersistTokens(ctx context.Context, networkID uint64, tokenList []domain.TokenDetails) error

	// Subscribe registers fn and returns a function removing it.
	Subscribe(fn domain.TokenListSubscriber) (unsubscribe func())

	// TriggerSubscriptions calls every subscriber with update, in registration order.
	TriggerSubscriptions(update domain.TokenListUpdate)
}
