package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "learnhub-cli"

// KeyringStorage keeps values in the OS keychain/credential manager
type KeyringStorage struct {
	service string
}

// NewKeyringStorage creates a keychain-backed Storage. An empty service uses the default.
func NewKeyringStorage(service string) *KeyringStorage {
	if service == "" {
		service = keyringService
	}
	return &KeyringStorage{service: service}
}

// Get treats any keychain failure as absent
func (k *KeyringStorage) Get(key string) (string, bool) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (k *KeyringStorage) Set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to save %s to keychain: %w", key, err)
	}
	return nil
}

func (k *KeyringStorage) Remove(key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete %s from keychain: %w", key, err)
	}
	return nil
}

// KeyringAvailable reports whether the keychain answers a read. Nothing is written.
func KeyringAvailable(service string) bool {
	if service == "" {
		service = keyringService
	}
	_, err := keyring.Get(service, UserTokenKey)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
