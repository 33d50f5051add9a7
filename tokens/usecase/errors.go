package usecase

import "fmt"

// PersistTokenListError is returned when a token list could not be written to storage.
// The in-memory registry is already updated when it is returned.
type PersistTokenListError struct {
	NetworkID uint64
	Key       string
	Err       error
}

// Error implements the error interface.
func (e PersistTokenListError) Error() string {
	return fmt.Sprintf("failed to persist token list (%s) of network %d: %v", e.Key, e.NetworkID, e.Err)
}

func (e PersistTokenListError) Unwrap() error {
	return e.Err
}

// FetchTokenListError is returned when the remote default token list cannot be fetched or decoded.
type FetchTokenListError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e FetchTokenListError) Error() string {
	return fmt.Sprintf("failed to fetch token list from (%s): %v", e.URL, e.Err)
}

func (e FetchTokenListError) Unwrap() error {
	return e.Err
}
