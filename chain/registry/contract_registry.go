package registry

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/batchauction/dexclient/domain"
)

type contractKey struct {
	networkID uint64
	address   common.Address
}

// ContractRegistry resolves the exchange contract of a network and caches the
// handles built for it. It is owned by the client session and passed to every
// chain client explicitly.
type ContractRegistry struct {
	addressesMx sync.RWMutex
	addresses   map[uint64]common.Address

	handlesMx sync.Mutex
	handles   map[contractKey]any
}

// New returns a registry resolving the given deployed addresses by network id.
func New(addresses map[uint64]common.Address) *ContractRegistry {
	copied := make(map[uint64]common.Address, len(addresses))
	for networkID, address := range addresses {
		copied[networkID] = address
	}

	return &ContractRegistry{
		addresses: copied,
		handles:   map[contractKey]any{},
	}
}

// GetContractAddress returns the exchange address deployed on networkID.
// Fails with domain.UnsupportedNetworkError if there is none.
func (r *ContractRegistry) GetContractAddress(networkID uint64) (common.Address, error) {
	r.addressesMx.RLock()
	address, ok := r.addresses[networkID]
	r.addressesMx.RUnlock()

	if !ok || address == (common.Address{}) {
		return common.Address{}, domain.UnsupportedNetworkError{NetworkID: networkID}
	}

	return address, nil
}

// SetContractAddress registers or replaces the exchange address of networkID.
func (r *ContractRegistry) SetContractAddress(networkID uint64, address common.Address) {
	r.addressesMx.Lock()
	defer r.addressesMx.Unlock()

	r.addresses[networkID] = address
}

// NetworkIDs returns the networks with a deployed exchange.
func (r *ContractRegistry) NetworkIDs() []uint64 {
	r.addressesMx.RLock()
	defer r.addressesMx.RUnlock()

	networkIDs := make([]uint64, 0, len(r.addresses))
	for networkID, address := range r.addresses {
		if address != (common.Address{}) {
			networkIDs = append(networkIDs, networkID)
		}
	}
	return networkIDs
}

// ContractHandleTypeError is returned when a cached handle has an unexpected type.
type ContractHandleTypeError struct {
	NetworkID uint64
	Address   common.Address
}

// Error implements the error interface.
func (e ContractHandleTypeError) Error() string {
	return "contract handle for " + e.Address.Hex() + " has unexpected type"
}

// GetContract returns the handle of the exchange deployed on networkID, building it
// with create the first time it is requested. Handles are cached by network and address.
func GetContract[T any](r *ContractRegistry, networkID uint64, create func(address common.Address) (T, error)) (T, error) {
	var zero T

	address, err := r.GetContractAddress(networkID)
	if err != nil {
		return zero, err
	}

	key := contractKey{networkID: networkID, address: address}

	r.handlesMx.Lock()
	defer r.handlesMx.Unlock()

	if handle, ok := r.handles[key]; ok {
		typed, ok := handle.(T)
		if !ok {
			return zero, ContractHandleTypeError{NetworkID: networkID, Address: address}
		}
		return typed, nil
	}

	handle, err := create(address)
	if err != nil {
		return zero, err
	}

	r.handles[key] = handle

	return handle, nil
}
