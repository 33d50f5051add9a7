package main

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/log"
)

func TestNewDexClient_Simulated(t *testing.T) {
	config := DefaultConfig
	config.Tokens = &domain.TokensConfig{}

	client, err := NewDexClient(context.Background(), config, &log.NoOpLogger{})
	require.NoError(t, err)

	// one order store per network with a deployed exchange
	orderbooks := client.GetOrderBookUseCases()
	require.Len(t, orderbooks, 2)
	require.Equal(t, uint64(1), orderbooks[0].NetworkID())
	require.Equal(t, uint64(4), orderbooks[1].NetworkID())

	// the simulated exchange keeps orders in the local store only
	require.NoError(t, orderbooks[0].InvalidateOrders(context.Background(), common.HexToAddress("0x1111111111111111111111111111111111111111")))

	require.Empty(t, client.GetTokensUseCase().GetTokens(1))

	require.NoError(t, client.Shutdown(context.Background()))
}

func TestNewDexClient_InvalidConfig(t *testing.T) {
	testcases := []struct {
		name   string
		mutate func(config *domain.Config)
	}{
		{
			name: "unknown storage type",
			mutate: func(config *domain.Config) {
				config.Storage = &domain.StorageConfig{Type: "postgres"}
			},
		},
		{
			name: "unknown chain mode",
			mutate: func(config *domain.Config) {
				config.Chain = &domain.ChainConfig{Mode: "solana"}
			},
		},
		{
			name: "invalid contract address",
			mutate: func(config *domain.Config) {
				config.Networks = []domain.NetworkConfig{{ID: 1, ContractAddress: "0x12"}}
			},
		},
		{
			name: "invalid registered token",
			mutate: func(config *domain.Config) {
				config.Exchange = &domain.ExchangeConfig{RegisteredTokens: []string{"owl"}}
			},
		},
		{
			name: "missing exchange config",
			mutate: func(config *domain.Config) {
				config.Exchange = nil
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig
			config.Tokens = &domain.TokensConfig{}
			tc.mutate(&config)

			_, err := NewDexClient(context.Background(), config, &log.NoOpLogger{})
			require.Error(t, err)
		})
	}
}
