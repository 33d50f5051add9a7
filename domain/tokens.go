package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenDetails represents the token's domain model.
type TokenDetails struct {
	Address   string `json:"address"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Decimals  int    `json:"decimals"`
	NetworkID uint64 `json:"networkId"`
	// Disabled tokens remain visible but flagged.
	Disabled bool `json:"disabled,omitempty"`
	// Override is the administrative patch applied to this token, if any.
	Override *TokenOverride `json:"override,omitempty"`
}

// TokenOverride is a per network, per address administrative patch.
// Only non-nil fields are copied onto the token.
type TokenOverride struct {
	Symbol   *string `json:"symbol,omitempty" mapstructure:"symbol"`
	Name     *string `json:"name,omitempty" mapstructure:"name"`
	Decimals *int    `json:"decimals,omitempty" mapstructure:"decimals"`
}

// TokenOverrides maps network id to lowercase token address to its patch.
type TokenOverrides map[uint64]map[string]TokenOverride

// Get returns the override for address on networkID, if any.
func (o TokenOverrides) Get(networkID uint64, address string) (TokenOverride, bool) {
	byAddress, ok := o[networkID]
	if !ok {
		return TokenOverride{}, false
	}
	override, ok := byAddress[strings.ToLower(address)]
	return override, ok
}

// ApplyOverride returns a copy of token with the patch applied.
// The token is disabled and keeps a reference to the applied patch.
func ApplyOverride(token TokenDetails, override TokenOverride) TokenDetails {
	patch := override
	token.Override = &patch
	token.Disabled = true

	if override.Symbol != nil {
		token.Symbol = *override.Symbol
	}
	if override.Name != nil {
		token.Name = *override.Name
	}
	if override.Decimals != nil {
		token.Decimals = *override.Decimals
	}

	return token
}

// ApplyOverrides applies the overrides of networkID to every matching token.
func (o TokenOverrides) ApplyOverrides(networkID uint64, tokens []TokenDetails) []TokenDetails {
	result := make([]TokenDetails, 0, len(tokens))
	for _, token := range tokens {
		if override, ok := o.Get(networkID, token.Address); ok {
			token = ApplyOverride(token, override)
		}
		result = append(result, token)
	}
	return result
}

// MergeTokenLists concatenates lists keeping the first occurrence of every
// address, compared case-insensitively. Ordering is first-seen.
func MergeTokenLists(lists ...[]TokenDetails) []TokenDetails {
	seen := map[string]struct{}{}
	result := []TokenDetails{}

	for _, list := range lists {
		for _, token := range list {
			key := strings.ToLower(token.Address)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, token)
		}
	}

	return result
}

// AddressNetworkKey returns the membership index key of an address on a network.
func AddressNetworkKey(address string, networkID uint64) string {
	return strings.ToLower(address) + "|" + strconv.FormatUint(networkID, 10)
}

// TokenListType is the source of a persisted token list.
type TokenListType string

const (
	ServiceTokenList TokenListType = "service"
	UserTokenList    TokenListType = "user"
)

// TokenListStorageKey returns the storage key of a persisted list.
func TokenListStorageKey(networkID uint64, listType TokenListType) string {
	return fmt.Sprintf("%s_TOKEN_LIST_%d", strings.ToUpper(string(listType)), networkID)
}

// TokenConfig is an entry of the remote default token list.
// A single entry describes the same token across networks.
type TokenConfig struct {
	ID               uint32            `json:"id"`
	Name             string            `json:"name"`
	Symbol           string            `json:"symbol"`
	Decimals         int               `json:"decimals"`
	AddressByNetwork map[string]string `json:"addressByNetwork"`
}

// TokensByNetwork returns the tokens of the default list deployed on networkID.
func TokensByNetwork(networkID uint64, configs []TokenConfig) []TokenDetails {
	networkKey := strconv.FormatUint(networkID, 10)

	result := make([]TokenDetails, 0, len(configs))
	for _, config := range configs {
		address, ok := config.AddressByNetwork[networkKey]
		if !ok || address == "" {
			continue
		}

		result = append(result, TokenDetails{
			Address:   address,
			Symbol:    config.Symbol,
			Name:      config.Name,
			Decimals:  config.Decimals,
			NetworkID: networkID,
		})
	}

	return result
}

// TokenListUpdate is delivered to token registry subscribers.
type TokenListUpdate struct {
	NetworkID uint64         `json:"network_id"`
	Tokens    []TokenDetails `json:"tokens"`
}

// TokenListSubscriber is notified of token list changes.
type TokenListSubscriber func(update TokenListUpdate)
