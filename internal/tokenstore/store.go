// Package tokenstore persists bearer tokens per role in client-side storage.
//
// Two independent namespaces exist, one for end users and one for admins, so the
// two sessions never collide. Tokens are opaque strings; nothing here inspects them.
package tokenstore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyToken  = errors.New("token is empty")
	ErrInvalidRole = errors.New("invalid role")
)

// Storage is key/value persistent client storage (cookie jar, keychain, file).
// Get must report absent rather than fail when the backing store is unavailable.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// TokenStore maps roles onto Storage keys
type TokenStore struct {
	storage Storage
}

// New creates a TokenStore over the given storage
func New(storage Storage) *TokenStore {
	return &TokenStore{storage: storage}
}

// Set stores token under the role's key
func (s *TokenStore) Set(role Role, token string) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if err := s.storage.Set(role.TokenKey(), token); err != nil {
		return fmt.Errorf("failed to save %s token: %w", role, err)
	}
	return nil
}

// Get returns the stored token for role, if any
func (s *TokenStore) Get(role Role) (string, bool) {
	if s == nil || s.storage == nil || !role.Valid() {
		return "", false
	}
	token, ok := s.storage.Get(role.TokenKey())
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the role's token. Clearing an absent token is not an error.
// Clearing the user session also drops the cached display name.
func (s *TokenStore) Clear(role Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.storage.Remove(role.TokenKey()); err != nil {
		return fmt.Errorf("failed to delete %s token: %w", role, err)
	}
	if role == RoleUser {
		return s.ClearDisplayName()
	}
	return nil
}

// SetDisplayName caches the user's name for display. Never use it for access control.
func (s *TokenStore) SetDisplayName(name string) error {
	if name == "" {
		return nil
	}
	return s.storage.Set(DisplayNameKey, name)
}

// DisplayName returns the cached display name
func (s *TokenStore) DisplayName() (string, bool) {
	if s == nil || s.storage == nil {
		return "", false
	}
	name, ok := s.storage.Get(DisplayNameKey)
	return name, ok && name != ""
}

// ClearDisplayName removes the cached display name
func (s *TokenStore) ClearDisplayName() error {
	if err := s.storage.Remove(DisplayNameKey); err != nil {
		return fmt.Errorf("failed to delete display name: %w", err)
	}
	return nil
}
