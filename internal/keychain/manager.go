// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for tumblr-repl.
// It stores the serialized OAuth credentials saved by `tumblr-repl login` in the OS
// keychain/credential store, so the console can start without a credentials file
// in the working directory.
//
// The package supports macOS Keychain, Windows Credential Manager and the common
// Linux stores (Secret Service, KWallet, pass, keyctl) through 99designs/keyring.
package keychain

import (
	"errors"
	"sync"

	apperrors "tumblr-repl/cli/internal/errors"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "tumblr-repl"

// KeyCredentials is the item key holding the serialized credentials JSON.
const KeyCredentials = "oauth_credentials"

// ErrNotFound is returned when no credentials have been saved.
var ErrNotFound = errors.New("no credentials in keychain")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KeychainUnavailable, "open keyring", err)
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		globalManager = nil
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// The encrypted file backend is not allowed because it would prompt for a
// passphrase on every start.
func openRing() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.KeyCtlBackend,
		},
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		LibSecretCollectionName:  "login",
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
	})
}

// SaveCredentials stores serialized credentials in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveCredentials(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         KeyCredentials,
		Data:        data,
		Label:       "tumblr-repl OAuth credentials",
		Description: "Tumblr API consumer and token credentials",
	})
}

// LoadCredentials retrieves serialized credentials from the keychain.
// It returns ErrNotFound when nothing has been saved yet.
// This method is thread-safe.
func (m *Manager) LoadCredentials() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyCredentials)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(it.Data) == 0 {
		return nil, ErrNotFound
	}
	return it.Data, nil
}

// ClearCredentials removes the stored credentials from the keychain.
// Removing credentials that were never saved is not an error.
// This method is thread-safe.
func (m *Manager) ClearCredentials() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeyCredentials); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
