// Package session derives per-view session state from the token store:
// who the current user is (for display only) and whether a protected view may render.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// FallbackDisplayName is shown when the profile cannot be loaded
const FallbackDisplayName = "User"

// TokenReader is the read side of the token store
type TokenReader interface {
	Get(role tokenstore.Role) (string, bool)
}

// ProfileClient fetches the user profile through the authorized client
type ProfileClient interface {
	Profile(ctx context.Context) (*apiclient.User, error)
}

// DisplayNameCache is the optional display-only username cache
type DisplayNameCache interface {
	SetDisplayName(name string) error
	DisplayName() (string, bool)
}

// UserSession loads the current user's profile. It never caches between calls
// and never fails: display code degrades to a generic label instead.
type UserSession struct {
	tokens TokenReader
	client ProfileClient
	cache  DisplayNameCache
	logger zerolog.Logger
}

// NewUserSession wires a UserSession. If tokens also implements DisplayNameCache
// the fetched name is cached for later display.
func NewUserSession(tokens TokenReader, client ProfileClient, logger zerolog.Logger) *UserSession {
	s := &UserSession{tokens: tokens, client: client, logger: logger}
	if cache, ok := tokens.(DisplayNameCache); ok {
		s.cache = cache
	}
	return s
}

// CurrentUser returns the profile, or false when there is no user token or the fetch failed.
// Without a token no request is made.
func (s *UserSession) CurrentUser(ctx context.Context) (*apiclient.User, bool) {
	if _, ok := s.tokens.Get(tokenstore.RoleUser); !ok {
		return nil, false
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("failed to load current user")
		return nil, false
	}

	if s.cache != nil {
		if err := s.cache.SetDisplayName(user.Name); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache display name")
		}
	}
	return user, true
}

// DisplayName returns a label for the current user. It prefers a fresh profile,
// then the cached name, then FallbackDisplayName.
func (s *UserSession) DisplayName(ctx context.Context) string {
	if user, ok := s.CurrentUser(ctx); ok && user.Name != "" {
		return user.Name
	}
	return s.CachedDisplayName()
}

// CachedDisplayName returns the cached name while a user token is present,
// else FallbackDisplayName. It makes no request.
func (s *UserSession) CachedDisplayName() string {
	if s.cache != nil {
		if _, ok := s.tokens.Get(tokenstore.RoleUser); ok {
			if name, ok := s.cache.DisplayName(); ok {
				return name
			}
		}
	}
	return FallbackDisplayName
}
