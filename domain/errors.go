package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		unsupportedNetwork UnsupportedNetworkError
		unavailableBatch   UnavailableBatchParametersError
		transferRejected   TransferRejectedError
		notYetSettled      NotYetSettledError
		alreadyRegistered  AlreadyRegisteredError
		capacityExceeded   CapacityExceededError
		unknownToken       UnknownTokenError
		invalidAmount      InvalidAmountError
		invalidAddress     InvalidAddressError
	)

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadParamInput),
		errors.As(err, &unsupportedNetwork),
		errors.As(err, &unknownToken),
		errors.As(err, &invalidAmount),
		errors.As(err, &invalidAddress):
		return http.StatusBadRequest
	case errors.As(err, &alreadyRegistered),
		errors.As(err, &capacityExceeded),
		errors.As(err, &notYetSettled):
		return http.StatusConflict
	case errors.As(err, &transferRejected):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableBatch):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// UnsupportedNetworkError is returned when no exchange contract is deployed on a network.
type UnsupportedNetworkError struct {
	NetworkID uint64
}

func (e UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("exchange contract was not deployed to network %d", e.NetworkID)
}

// UnavailableBatchParametersError is returned when the batch time or id cannot be read.
type UnavailableBatchParametersError struct {
	NetworkID uint64
	Err       error
}

func (e UnavailableBatchParametersError) Error() string {
	return fmt.Sprintf("batch parameters unavailable for network %d: %v", e.NetworkID, e.Err)
}

func (e UnavailableBatchParametersError) Unwrap() error {
	return e.Err
}

// TransferRejectedError is returned when the contract rejects a deposit or withdraw
// because of allowance or balance validation.
type TransferRejectedError struct {
	Kind   OperationKind
	Owner  common.Address
	Token  common.Address
	Reason string
}

func (e TransferRejectedError) Error() string {
	return fmt.Sprintf("%s of token %s by %s rejected: %s", e.Kind, e.Token.Hex(), e.Owner.Hex(), e.Reason)
}

// NotYetSettledError is returned when a withdraw is finalized before its batch elapsed.
type NotYetSettledError struct {
	Owner          common.Address
	Token          common.Address
	BatchID        BatchID
	CurrentBatchID BatchID
}

func (e NotYetSettledError) Error() string {
	return fmt.Sprintf("withdraw of token %s by %s requested in batch %d is not settled at batch %d", e.Token.Hex(), e.Owner.Hex(), e.BatchID, e.CurrentBatchID)
}

// AlreadyRegisteredError is returned when registering a token address twice.
type AlreadyRegisteredError struct {
	Address common.Address
	TokenID uint16
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("token %s already registered with id %d", e.Address.Hex(), e.TokenID)
}

// CapacityExceededError is returned when the maximum number of tokens is reached.
type CapacityExceededError struct {
	MaxTokens uint16
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("max tokens reached (%d)", e.MaxTokens)
}

// UnknownTokenError is returned when an operation references an unregistered token.
type UnknownTokenError struct {
	TokenID uint16
	Address string
}

func (e UnknownTokenError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("token %s is not registered", e.Address)
	}
	return fmt.Sprintf("token id %d is not registered", e.TokenID)
}

// InvalidAmountError is returned for negative or missing amounts.
type InvalidAmountError struct {
	Amount string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount (%s)", e.Amount)
}

// InvalidAddressError is returned when a string is not a hex address.
type InvalidAddressError struct {
	Address string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address (%s)", e.Address)
}

// BatchClockDriftError is returned when the batch id reported by the contract
// disagrees with the one computed from the local clock.
type BatchClockDriftError struct {
	NetworkID     uint64
	ChainBatchID  BatchID
	LocalBatchID  BatchID
	MaxDriftBatch uint64
}

func (e BatchClockDriftError) Error() string {
	return fmt.Sprintf("batch id drift on network %d: chain (%d), local (%d), max drift (%d)", e.NetworkID, e.ChainBatchID, e.LocalBatchID, e.MaxDriftBatch)
}

// StaleBatchIDError is returned when the batch id reported by the contract stopped advancing.
type StaleBatchIDError struct {
	NetworkID               uint64
	StoredBatchID           BatchID
	TimeSinceLastUpdate     int
	MaxAllowedTimeDeltaSecs int
}

func (e StaleBatchIDError) Error() string {
	return fmt.Sprintf("batch id (%d) on network %d has not been updated for %d seconds, max allowed (%d)", e.StoredBatchID, e.NetworkID, e.TimeSinceLastUpdate, e.MaxAllowedTimeDeltaSecs)
}
