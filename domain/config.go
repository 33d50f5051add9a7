package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Config defines the config for the exchange client.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// Chain encapsulates the chain client config.
	Chain *ChainConfig `mapstructure:"chain"`

	// Networks are the networks the client operates on.
	Networks []NetworkConfig `mapstructure:"networks"`

	// Storage encapsulates the persistent storage config.
	Storage *StorageConfig `mapstructure:"storage"`

	// Tokens encapsulates the token registry config.
	Tokens *TokensConfig `mapstructure:"tokens"`

	// Exchange encapsulates the order store config.
	Exchange *ExchangeConfig `mapstructure:"exchange"`

	OTEL *OTELConfig `mapstructure:"otel"`

	CORS *CORSConfig `mapstructure:"cors"`
}

// ChainMode selects the chain client implementation.
type ChainMode string

const (
	// EthereumChainMode talks JSON-RPC to an EVM node.
	EthereumChainMode ChainMode = "ethereum"
	// SimulatedChainMode runs the in-memory exchange contract.
	SimulatedChainMode ChainMode = "simulated"
)

// ChainConfig defines the chain client configuration.
type ChainConfig struct {
	Mode ChainMode `mapstructure:"mode"`
	// RPCEndpoint is the JSON-RPC endpoint of the node, used in ethereum mode.
	RPCEndpoint string `mapstructure:"rpc-endpoint"`
	// ReceiptPollIntervalMs is how often receipts are polled while waiting for a transaction to be mined.
	ReceiptPollIntervalMs int `mapstructure:"receipt-poll-interval-ms"`
	// BatchTimeSeconds is the batch duration of the simulated contract.
	BatchTimeSeconds uint64 `mapstructure:"batch-time-seconds"`
	// BatchTimeCacheSize bounds the number of networks whose batch time is cached.
	BatchTimeCacheSize int `mapstructure:"batch-time-cache-size"`
}

// NetworkConfig describes a network and the exchange contract deployed on it.
type NetworkConfig struct {
	ID uint64 `mapstructure:"id"`
	// ContractAddress is empty when the exchange is not deployed on the network.
	ContractAddress string `mapstructure:"contract-address"`
	// RPCEndpoint overrides the chain RPC endpoint for this network.
	RPCEndpoint string `mapstructure:"rpc-endpoint"`
}

// StorageType selects the key-value storage implementation.
type StorageType string

const (
	MemoryStorageType StorageType = "memory"
	RedisStorageType  StorageType = "redis"
	BoltStorageType   StorageType = "bolt"
)

// StorageConfig defines the persistent storage configuration.
type StorageConfig struct {
	Type StorageType `mapstructure:"type"`
	// Redis configuration.
	RedisAddress  string `mapstructure:"redis-address"`
	RedisPassword string `mapstructure:"redis-password"`
	RedisDB       int    `mapstructure:"redis-db"`
	// Bolt configuration.
	BoltPath   string `mapstructure:"bolt-path"`
	BoltBucket string `mapstructure:"bolt-bucket"`
}

// TokensConfig defines the token registry configuration.
type TokensConfig struct {
	// DefaultListURL is the URL of the remote default token list.
	DefaultListURL string `mapstructure:"default-list-url"`
	// RefreshIntervalSecs is how often the remote list is re-fetched. Zero disables refreshing.
	RefreshIntervalSecs int `mapstructure:"refresh-interval-secs"`
	// Overrides maps network id to token address to its administrative patch.
	Overrides map[string]map[string]TokenOverride `mapstructure:"overrides"`
}

// ExchangeConfig defines the order store configuration.
type ExchangeConfig struct {
	MaxTokens uint16 `mapstructure:"max-tokens"`
	// StrictTokenValidation rejects orders referencing unregistered token ids.
	StrictTokenValidation bool `mapstructure:"strict-token-validation"`
	// RegisteredTokens are the token addresses registered at start up, in id order.
	RegisteredTokens []string `mapstructure:"registered-tokens"`
}

// OTELConfig defines the tracing and error reporting configuration.
type OTELConfig struct {
	DSN              string  `mapstructure:"dsn"`
	SampleRate       float64 `mapstructure:"sample-rate"`
	EnableTracing    bool    `mapstructure:"enable-tracing"`
	TracesSampleRate float64 `mapstructure:"traces-sample-rate"`
	Environment      string  `mapstructure:"environment"`
}

// CORSConfig defines the CORS headers set on every response.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// RPCEndpoints returns the distinct JSON-RPC endpoints to dial, in configuration order.
func (c Config) RPCEndpoints() []string {
	seen := map[string]struct{}{}
	endpoints := []string{}

	add := func(endpoint string) {
		if endpoint == "" {
			return
		}
		if _, ok := seen[endpoint]; ok {
			return
		}
		seen[endpoint] = struct{}{}
		endpoints = append(endpoints, endpoint)
	}

	if c.Chain != nil {
		add(c.Chain.RPCEndpoint)
	}
	for _, network := range c.Networks {
		add(network.RPCEndpoint)
	}

	return endpoints
}

// NetworkIDs returns the ids of all configured networks.
func (c Config) NetworkIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Networks))
	for _, network := range c.Networks {
		ids = append(ids, network.ID)
	}
	return ids
}

// ContractAddresses returns the deployed contract address by network id.
// Networks with an empty address are omitted.
func (c Config) ContractAddresses() (map[uint64]common.Address, error) {
	result := make(map[uint64]common.Address, len(c.Networks))
	for _, network := range c.Networks {
		if network.ContractAddress == "" {
			continue
		}
		if !common.IsHexAddress(network.ContractAddress) {
			return nil, InvalidAddressError{Address: network.ContractAddress}
		}
		result[network.ID] = common.HexToAddress(network.ContractAddress)
	}
	return result, nil
}

// TokenOverrides converts the configured overrides, lower casing addresses.
func (c TokensConfig) TokenOverrides() (TokenOverrides, error) {
	result := make(TokenOverrides, len(c.Overrides))
	for networkIDStr, byAddress := range c.Overrides {
		var networkID uint64
		if _, err := fmt.Sscan(networkIDStr, &networkID); err != nil {
			return nil, fmt.Errorf("invalid network id (%s) in token overrides: %w", networkIDStr, err)
		}

		networkOverrides := make(map[string]TokenOverride, len(byAddress))
		for address, override := range byAddress {
			networkOverrides[strings.ToLower(address)] = override
		}
		result[networkID] = networkOverrides
	}
	return result, nil
}
