package main

import (
	"github.com/batchauction/dexclient/domain"
)

// DefaultConfig defines the default config for the exchange client.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "dexclient.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	Chain: &domain.ChainConfig{
		Mode:                  domain.SimulatedChainMode,
		RPCEndpoint:           "http://localhost:8545",
		ReceiptPollIntervalMs: 2000,
		BatchTimeSeconds:      300, // 5 minutes, as on the deployed contracts.
		BatchTimeCacheSize:    16,
	},

	Networks: []domain.NetworkConfig{
		{ID: 1, ContractAddress: "0x6F400810b62df8E13fded51bE75fF5393eaa841F"},
		{ID: 4, ContractAddress: "0xC576eA7bd102F7E476368a5E98FA455d1Ea34dE2"},
	},

	Storage: &domain.StorageConfig{
		Type:       domain.MemoryStorageType,
		BoltPath:   "dexclient.db",
		BoltBucket: "dexclient",
	},

	Tokens: &domain.TokensConfig{
		DefaultListURL:      "",
		RefreshIntervalSecs: 600, // 10 minutes
	},

	Exchange: &domain.ExchangeConfig{
		MaxTokens: 10000,
	},

	OTEL: &domain.OTELConfig{
		SampleRate:       1,
		TracesSampleRate: 0.1,
		Environment:      "development",
	},

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
		AllowedMethods: "GET, POST, DELETE",
		AllowedOrigin:  "*",
	},
}
