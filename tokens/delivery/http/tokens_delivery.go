package http

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/json"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/log"
)

// TokensHandler  represent the httphandler for the token registry
type TokensHandler struct {
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const tokensResource = "/tokens/:" + domain.NetworkIDParam

func formatTokensResource(resource string) string {
	return tokensResource + resource
}

// HasTokenResponse represents the response of the token lookup endpoint.
type HasTokenResponse struct {
	Address string `json:"address"`
	Exists  bool   `json:"exists"`
}

// NewTokensHandler will initialize the /tokens/:networkId resources endpoint
func NewTokensHandler(e *echo.Echo, ts mvc.TokensUsecase, logger log.Logger) *TokensHandler {
	handler := &TokensHandler{
		TUsecase: ts,
		logger:   logger,
	}
	e.GET(formatTokensResource(""), handler.GetTokens)
	e.POST(formatTokensResource(""), handler.AddTokens)
	e.GET(formatTokensResource("/has"), handler.HasToken)

	return handler
}

// GetTokens returns the merged token list of the network.
// Disabled tokens are omitted when the enabledOnly query parameter is set.
func (a *TokensHandler) GetTokens(c echo.Context) error {
	networkID, err := domain.ParseNetworkIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	enabledOnly, err := domain.ParseBooleanQueryParam(c, "enabledOnly")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: fmt.Errorf("%w: enabledOnly (%v)", domain.ErrBadParamInput, err).Error()})
	}

	tokens := a.TUsecase.GetTokens(networkID)
	if enabledOnly {
		enabled := make([]domain.TokenDetails, 0, len(tokens))
		for _, token := range tokens {
			if !token.Disabled {
				enabled = append(enabled, token)
			}
		}
		tokens = enabled
	}

	return c.JSON(http.StatusOK, tokens)
}

// HasToken reports whether the address query parameter is a known token of the network.
func (a *TokensHandler) HasToken(c echo.Context) error {
	networkID, err := domain.ParseNetworkIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	address := c.QueryParam("address")
	if address == "" {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: fmt.Errorf("%w: address is required", domain.ErrBadParamInput).Error()})
	}

	return c.JSON(http.StatusOK, HasTokenResponse{
		Address: address,
		Exists:  a.TUsecase.HasToken(networkID, address),
	})
}

// AddTokens adds the tokens of the body to the user list of the network.
// Known tokens are skipped.
func (a *TokensHandler) AddTokens(c echo.Context) error {
	ctx := c.Request().Context()

	networkID, err := domain.ParseNetworkIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	var tokens []domain.TokenDetails
	if err := json.NewDecoder(c.Request().Body).Decode(&tokens); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: fmt.Errorf("%w: %v", domain.ErrBadParamInput, err).Error()})
	}

	for i := range tokens {
		if !common.IsHexAddress(tokens[i].Address) {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: domain.InvalidAddressError{Address: tokens[i].Address}.Error()})
		}
		tokens[i].NetworkID = networkID
	}

	if err := a.TUsecase.AddTokens(ctx, networkID, tokens); err != nil {
		// the in-memory list is updated even if persisting failed
		a.logger.Error("failed to add tokens", zap.Uint64("network_id", networkID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.TUsecase.GetTokens(networkID))
}
