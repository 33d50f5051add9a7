package registry_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
)

var (
	mainnetAddress = common.HexToAddress("0x6f400810b62df8e13fded51be75ff5393eaa841f")
	rinkebyAddress = common.HexToAddress("0xc576ea7bd102f7e476368a5e98fa455d1ea34de2")
)

func TestGetContractAddress(t *testing.T) {
	r := registry.New(map[uint64]common.Address{
		1: mainnetAddress,
		3: {},
	})

	address, err := r.GetContractAddress(1)
	require.NoError(t, err)
	require.Equal(t, mainnetAddress, address)

	_, err = r.GetContractAddress(4)
	require.ErrorAs(t, err, &domain.UnsupportedNetworkError{})

	// The zero address is treated as not deployed.
	_, err = r.GetContractAddress(3)
	require.ErrorAs(t, err, &domain.UnsupportedNetworkError{})

	r.SetContractAddress(4, rinkebyAddress)
	address, err = r.GetContractAddress(4)
	require.NoError(t, err)
	require.Equal(t, rinkebyAddress, address)

	require.ElementsMatch(t, []uint64{1, 4}, r.NetworkIDs())
}

func TestGetContractCachesHandles(t *testing.T) {
	r := registry.New(map[uint64]common.Address{1: mainnetAddress, 4: rinkebyAddress})

	createCalls := 0
	create := func(address common.Address) (*string, error) {
		createCalls++
		handle := address.Hex()
		return &handle, nil
	}

	first, err := registry.GetContract(r, 1, create)
	require.NoError(t, err)
	second, err := registry.GetContract(r, 1, create)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, createCalls)

	other, err := registry.GetContract(r, 4, create)
	require.NoError(t, err)
	require.Equal(t, rinkebyAddress.Hex(), *other)
	require.Equal(t, 2, createCalls)

	// A new address for the network builds a new handle.
	r.SetContractAddress(1, rinkebyAddress)
	third, err := registry.GetContract(r, 1, create)
	require.NoError(t, err)
	require.NotSame(t, first, third)
	require.Equal(t, 3, createCalls)
}

func TestGetContractErrors(t *testing.T) {
	r := registry.New(map[uint64]common.Address{1: mainnetAddress})

	createCalled := false
	_, err := registry.GetContract(r, 42, func(address common.Address) (int, error) {
		createCalled = true
		return 0, nil
	})
	require.ErrorAs(t, err, &domain.UnsupportedNetworkError{})
	require.False(t, createCalled, "no contract call must be attempted for an unsupported network")

	createErr := errors.New("dial failed")
	_, err = registry.GetContract(r, 1, func(address common.Address) (int, error) {
		return 0, createErr
	})
	require.ErrorIs(t, err, createErr)

	// Failures are not cached.
	handle, err := registry.GetContract(r, 1, func(address common.Address) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, handle)

	_, err = registry.GetContract(r, 1, func(address common.Address) (string, error) {
		return "", nil
	})
	require.ErrorAs(t, err, &registry.ContractHandleTypeError{})
}
