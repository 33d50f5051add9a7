package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// ParseNumbers parses a comma-separated list of numbers into a slice of unit64.
func ParseNumbers(numbersParam string) ([]uint64, error) {
	var numbers []uint64
	numStrings := splitAndTrim(numbersParam, ",")

	for _, numStr := range numStrings {
		num, err := strconv.ParseUint(numStr, 10, 64)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, num)
	}

	return numbers, nil
}

// ParseBooleanQueryParam parses a boolean query parameter.
// Returns false if the parameter is not present.
// Errors if the value is not a valid boolean.
func ParseBooleanQueryParam(c echo.Context, paramName string) (paramValue bool, err error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr != "" {
		paramValue, err = strconv.ParseBool(paramValueStr)
		if err != nil {
			return false, err
		}
	}

	return paramValue, nil
}

// NetworkIDParam is the path parameter carrying the network id.
const NetworkIDParam = "networkId"

// ParseNetworkIDParam parses the network id path parameter.
func ParseNetworkIDParam(c echo.Context) (uint64, error) {
	networkIDStr := c.Param(NetworkIDParam)
	networkID, err := strconv.ParseUint(networkIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: network id (%s)", ErrBadParamInput, networkIDStr)
	}
	return networkID, nil
}

// ParseAddress parses a hex address.
// The empty string maps to the zero address, which reads treat as unset.
func ParseAddress(address string) (common.Address, error) {
	if address == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(address) {
		return common.Address{}, InvalidAddressError{Address: address}
	}
	return common.HexToAddress(address), nil
}

// ParseAmount parses a non-negative base 10 integer amount.
func ParseAmount(amount string) (osmomath.Int, error) {
	value, ok := osmomath.NewIntFromString(amount)
	if !ok || value.IsNegative() {
		return osmomath.Int{}, InvalidAmountError{Amount: amount}
	}
	return value, nil
}

// splitAndTrim splits a string by a separator and trims the resulting strings.
func splitAndTrim(s, sep string) []string {
	var result []string
	for _, val := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
