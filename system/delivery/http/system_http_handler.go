package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/log"
)

type SystemHandler struct {
	logger    log.Logger
	store     domain.KVStore
	CIUsecase mvc.ChainInfoUsecase
	config    domain.Config
}

const (
	versionPlaceholder = "version="

	// healthcheckKey is read to verify the storage backend is reachable.
	healthcheckKey = "healthcheck"
)

// NetworkHealth is the health of a single configured network.
type NetworkHealth struct {
	NetworkID      uint64 `json:"network_id"`
	LatestBatchID  uint32 `json:"latest_batch_id,omitempty"`
	Error          string `json:"error,omitempty"`
	ExchangeStatus string `json:"exchange_status"`
}

// HealthResponse is the response of the health check endpoint.
type HealthResponse struct {
	StorageStatus string          `json:"storage_status"`
	Networks      []NetworkHealth `json:"networks"`
}

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, store domain.KVStore, logger log.Logger, us mvc.ChainInfoUsecase) *SystemHandler {
	handler := &SystemHandler{
		logger:    logger,
		store:     store,
		CIUsecase: us,
		config:    config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return handler
}

// GetConfig returns the config of the client
func (h *SystemHandler) GetConfig(c echo.Context) error {
	config := h.config
	if config.Storage != nil {
		storage := *config.Storage
		storage.RedisPassword = ""
		config.Storage = &storage
	}
	return c.JSON(http.StatusOK, config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	// the version runs until the next flag or the end of the value
	if end := strings.IndexAny(substring, " \t"); end != -1 {
		substring = substring[:end]
	}

	if substring == "" {
		return "", fmt.Errorf("empty version string")
	}

	return substring, nil
}

// GetHealthStatus checks the storage backend and the batch clock of every configured network.
// Networks without a deployed exchange are reported but never fail the check.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	if _, _, err := h.store.Get(ctx, healthcheckKey); err != nil {
		h.logger.Error("Error connecting to storage", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to storage", err)
	}

	response := HealthResponse{
		StorageStatus: "running",
		Networks:      make([]NetworkHealth, 0, len(h.config.Networks)),
	}

	healthy := true
	for _, network := range h.config.Networks {
		health := NetworkHealth{NetworkID: network.ID}

		if network.ContractAddress == "" {
			health.ExchangeStatus = "not deployed"
			response.Networks = append(response.Networks, health)
			continue
		}

		latestBatchID, err := h.CIUsecase.GetLatestBatchID(ctx, network.ID)
		if err != nil {
			h.logger.Error("network is unhealthy", zap.Uint64("network_id", network.ID), zap.Error(err))

			healthy = false
			health.ExchangeStatus = "unavailable"
			health.Error = err.Error()
		} else {
			health.ExchangeStatus = "running"
			health.LatestBatchID = uint32(latestBatchID)
		}

		response.Networks = append(response.Networks, health)
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
