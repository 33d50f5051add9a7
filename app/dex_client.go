package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	batchhttpdelivery "github.com/batchauction/dexclient/batch/delivery/http"
	batchusecase "github.com/batchauction/dexclient/batch/usecase"
	"github.com/batchauction/dexclient/chain/ethereum"
	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/chain/simulated"
	chaininforepo "github.com/batchauction/dexclient/chaininfo/repository"
	chaininfousecase "github.com/batchauction/dexclient/chaininfo/usecase"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	fluxhttpdelivery "github.com/batchauction/dexclient/flux/delivery/http"
	fluxusecase "github.com/batchauction/dexclient/flux/usecase"
	"github.com/batchauction/dexclient/log"
	"github.com/batchauction/dexclient/middleware"
	orderbookhttpdelivery "github.com/batchauction/dexclient/orderbook/delivery/http"
	orderbookrepository "github.com/batchauction/dexclient/orderbook/repository"
	orderbookusecase "github.com/batchauction/dexclient/orderbook/usecase"
	boltrepo "github.com/batchauction/dexclient/storage/repository/bolt"
	memoryrepo "github.com/batchauction/dexclient/storage/repository/memory"
	redisrepo "github.com/batchauction/dexclient/storage/repository/redis"
	systemhttpdelivery "github.com/batchauction/dexclient/system/delivery/http"
	tokenshttpdelivery "github.com/batchauction/dexclient/tokens/delivery/http"
	tokensusecase "github.com/batchauction/dexclient/tokens/usecase"
)

// DexClient defines an interface for the exchange client.
// It wires the batch clock, flux tracker, token registry and order stores
// and exposes them over HTTP.
type DexClient interface {
	GetTokensUseCase() mvc.TokensUsecase
	GetFluxUseCase() mvc.FluxUsecase
	GetOrderBookUseCases() []mvc.OrderBookUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type dexClient struct {
	tokensUseCase     mvc.TokensUsecase
	fluxUseCase       mvc.FluxUsecase
	orderBookUseCases []mvc.OrderBookUsecase

	tokenListFetcher *tokensusecase.TokenListHTTPFetcher
	tokenRefresh     time.Duration
	networkIDs       []uint64

	store     domain.KVStore
	closeFunc func()

	e       *echo.Echo
	address string
	logger  log.Logger
}

var _ DexClient = &dexClient{}

// GetTokensUseCase implements DexClient.
func (d *dexClient) GetTokensUseCase() mvc.TokensUsecase {
	return d.tokensUseCase
}

// GetFluxUseCase implements DexClient.
func (d *dexClient) GetFluxUseCase() mvc.FluxUsecase {
	return d.fluxUseCase
}

// GetOrderBookUseCases implements DexClient.
func (d *dexClient) GetOrderBookUseCases() []mvc.OrderBookUsecase {
	return d.orderBookUseCases
}

// GetLogger implements DexClient.
func (d *dexClient) GetLogger() log.Logger {
	return d.logger
}

// Shutdown implements DexClient.
func (d *dexClient) Shutdown(ctx context.Context) error {
	err := d.e.Shutdown(ctx)

	if d.closeFunc != nil {
		d.closeFunc()
	}

	if closeErr := d.store.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	return err
}

// Start implements DexClient.
func (d *dexClient) Start(ctx context.Context) error {
	if d.tokenListFetcher != nil && d.tokenRefresh > 0 {
		go d.refreshTokenList(ctx)
	}

	d.logger.Info("Starting exchange client", zap.String("address", d.address))
	if err := d.e.Start(d.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// refreshTokenList re-fetches the default token list until ctx is done.
func (d *dexClient) refreshTokenList(ctx context.Context) {
	ticker := time.NewTicker(d.tokenRefresh)
	defer ticker.Stop()

	persist := tokensusecase.PersistTokenListFunc(d.tokensUseCase, d.networkIDs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.tokenListFetcher.FetchAndUpdateTokens(ctx, persist); err != nil {
				d.logger.Error("failed to refresh default token list", zap.Error(err))
			}
		}
	}
}

// NewDexClient creates a new exchange client.
func NewDexClient(ctx context.Context, config domain.Config, logger log.Logger) (DexClient, error) {
	if config.Chain == nil || config.Storage == nil || config.Tokens == nil || config.Exchange == nil {
		return nil, fmt.Errorf("%w: chain, storage, tokens and exchange config are required", domain.ErrBadParamInput)
	}

	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("dexclient")))
	e.Use(middleware.TraceWithParamsMiddleware("dexclient"))

	store, err := newStore(ctx, *config.Storage, logger)
	if err != nil {
		return nil, err
	}

	addresses, err := config.ContractAddresses()
	if err != nil {
		return nil, err
	}
	contracts := registry.New(addresses)

	chain, err := newChainBackend(ctx, config, contracts, logger)
	if err != nil {
		return nil, err
	}
	chainClient := chain.client

	// Batch clock
	batchUseCase, err := batchusecase.NewBatchUsecase(chainClient, contracts, config.Chain.BatchTimeCacheSize, logger)
	if err != nil {
		return nil, err
	}

	chainInfoUseCase := chaininfousecase.NewChainInfoUsecase(chainClient, batchUseCase, chaininforepo.New(), nil)

	// Flux tracker
	fluxUseCase := fluxusecase.NewFluxUsecase(chainClient, batchUseCase, contracts, chain.gasPriceFetcher, logger)

	// Token registry
	overrides, err := config.Tokens.TokenOverrides()
	if err != nil {
		return nil, err
	}
	tokensUseCase := tokensusecase.NewTokensUsecase(store, overrides, logger)

	var (
		tokenListFetcher  *tokensusecase.TokenListHTTPFetcher
		remoteDefaultList []domain.TokenConfig
	)
	if config.Tokens.DefaultListURL != "" {
		tokenListFetcher = tokensusecase.NewTokenListHTTPFetcher(config.Tokens.DefaultListURL, tokensusecase.GetTokenList)

		// an unreachable default list leaves the persisted lists in place
		remoteDefaultList, _, err = tokenListFetcher.Fetch(ctx)
		if err != nil {
			logger.Error("failed to fetch default token list", zap.Error(err))
		}
	}

	networkIDs := config.NetworkIDs()
	if err := tokensUseCase.Initialize(ctx, networkIDs, remoteDefaultList); err != nil {
		return nil, err
	}

	// Order stores, one per network the exchange is deployed on
	orderbookOpts, err := newOrderbookOptions(*config.Exchange)
	if err != nil {
		return nil, err
	}
	if chain.orderReader != nil {
		orderbookOpts = append(orderbookOpts, orderbookusecase.WithOrderReader(chain.orderReader))
	}

	orderBookUseCases := make([]mvc.OrderBookUsecase, 0, len(addresses))
	for _, network := range config.Networks {
		if _, ok := addresses[network.ID]; !ok {
			continue
		}

		orderBookUseCases = append(orderBookUseCases, orderbookusecase.New(
			network.ID,
			contracts,
			batchUseCase,
			orderbookrepository.New(),
			logger,
			orderbookOpts...,
		))
	}

	// HTTP handlers
	systemhttpdelivery.NewSystemHandler(e, config, store, logger, chainInfoUseCase)
	batchhttpdelivery.NewBatchHandler(e, batchUseCase)
	fluxhttpdelivery.NewFluxHandler(e, fluxUseCase)
	tokenshttpdelivery.NewTokensHandler(e, tokensUseCase, logger)
	orderbookhttpdelivery.NewOrderbookHandler(e, orderBookUseCases, logger)

	return &dexClient{
		tokensUseCase:     tokensUseCase,
		fluxUseCase:       fluxUseCase,
		orderBookUseCases: orderBookUseCases,

		tokenListFetcher: tokenListFetcher,
		tokenRefresh:     time.Duration(config.Tokens.RefreshIntervalSecs) * time.Second,
		networkIDs:       networkIDs,

		store:     store,
		closeFunc: chain.close,

		e:       e,
		address: config.ServerAddress,
		logger:  logger,
	}, nil
}

func newStore(ctx context.Context, config domain.StorageConfig, logger log.Logger) (domain.KVStore, error) {
	switch config.Type {
	case domain.RedisStorageType:
		logger.Info("Pinging redis", zap.String("redis_address", config.RedisAddress))
		return redisrepo.NewFromConfig(ctx, config)
	case domain.BoltStorageType:
		logger.Info("Opening bolt database", zap.String("path", config.BoltPath))
		return boltrepo.New(config.BoltPath, config.BoltBucket)
	case domain.MemoryStorageType, "":
		return memoryrepo.New(), nil
	default:
		return nil, fmt.Errorf("%w: storage type (%s)", domain.ErrBadParamInput, config.Type)
	}
}

// chainBackend is the chain client selected by the config together with its optional collaborators.
type chainBackend struct {
	client          domain.ChainClient
	gasPriceFetcher domain.GasPriceFetcher
	// orderReader is nil when orders live in the local store only.
	orderReader orderbookdomain.OrderReader
	close       func()
}

// newChainBackend connects to the chain selected by the config.
func newChainBackend(ctx context.Context, config domain.Config, contracts *registry.ContractRegistry, logger log.Logger) (chainBackend, error) {
	switch config.Chain.Mode {
	case domain.EthereumChainMode:
		var opts []ethereum.Option
		if config.Chain.ReceiptPollIntervalMs > 0 {
			opts = append(opts, ethereum.WithReceiptPollInterval(time.Duration(config.Chain.ReceiptPollIntervalMs)*time.Millisecond))
		}

		endpoints := config.RPCEndpoints()
		if len(endpoints) == 0 {
			return chainBackend{}, fmt.Errorf("%w: rpc endpoint is required in %s mode", domain.ErrBadParamInput, config.Chain.Mode)
		}

		clients := make([]*ethereum.Client, 0, len(endpoints))
		for _, endpoint := range endpoints {
			client, err := ethereum.Dial(ctx, endpoint, contracts, logger, opts...)
			if err != nil {
				for _, c := range clients {
					c.Close()
				}
				return chainBackend{}, err
			}

			logger.Info("connected to node", zap.String("endpoint", endpoint), zap.Uint64("network_id", client.NetworkID()))
			clients = append(clients, client)
		}

		router := ethereum.NewRouter(clients...)
		return chainBackend{
			client:          router,
			gasPriceFetcher: router.SuggestGasPrice,
			orderReader:     router,
			close:           router.Close,
		}, nil
	case domain.SimulatedChainMode, "":
		logger.Info("running against the simulated exchange", zap.Uint64("batch_time", config.Chain.BatchTimeSeconds))
		return chainBackend{client: simulated.New(contracts, config.Chain.BatchTimeSeconds, logger)}, nil
	default:
		return chainBackend{}, fmt.Errorf("%w: chain mode (%s)", domain.ErrBadParamInput, config.Chain.Mode)
	}
}

func newOrderbookOptions(config domain.ExchangeConfig) ([]orderbookusecase.Option, error) {
	opts := []orderbookusecase.Option{
		orderbookusecase.WithMaxTokens(config.MaxTokens),
	}

	if config.StrictTokenValidation {
		opts = append(opts, orderbookusecase.WithStrictTokenValidation())
	}

	if len(config.RegisteredTokens) > 0 {
		registered := make([]common.Address, 0, len(config.RegisteredTokens))
		for _, address := range config.RegisteredTokens {
			if !common.IsHexAddress(address) {
				return nil, domain.InvalidAddressError{Address: address}
			}
			registered = append(registered, common.HexToAddress(address))
		}
		opts = append(opts, orderbookusecase.WithRegisteredTokens(registered))
	}

	return opts, nil
}
