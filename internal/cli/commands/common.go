package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/learnhub-dev/learnhub/internal/apiclient"
	"github.com/learnhub-dev/learnhub/internal/cli/userconfig"
	"github.com/learnhub-dev/learnhub/internal/session"
	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// errNotLoggedIn is returned when the session gate stops a command
var errNotLoggedIn = errors.New("not authenticated")

// runEnv is what every command runs against
type runEnv struct {
	apiURL string
	tokens *tokenstore.TokenStore
	out    io.Writer
	errOut io.Writer
	api    *apiclient.Client
	gate   *session.Gate
	logger zerolog.Logger
}

// Option overrides parts of the environment, mainly for tests
type Option func(*runEnv)

func WithAPIURL(url string) Option {
	return func(e *runEnv) { e.apiURL = url }
}

func WithTokens(tokens *tokenstore.TokenStore) Option {
	return func(e *runEnv) { e.tokens = tokens }
}

func WithOutput(out io.Writer) Option {
	return func(e *runEnv) { e.out = out }
}

func WithErrOutput(errOut io.Writer) Option {
	return func(e *runEnv) { e.errOut = errOut }
}

// newRunEnv loads the user config for anything not supplied by opts
func newRunEnv(opts ...Option) (*runEnv, error) {
	env := &runEnv{out: os.Stdout, errOut: os.Stderr, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(env)
	}

	if env.apiURL == "" || env.tokens == nil {
		cfg, err := userconfig.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if env.apiURL == "" {
			env.apiURL = cfg.APIURL
		}
		if env.tokens == nil {
			tokens, err := defaultTokenStore(cfg)
			if err != nil {
				return nil, err
			}
			env.tokens = tokens
		}
	}

	nav := loginHint{w: env.errOut}
	api, err := apiclient.New(env.apiURL, apiclient.Options{Tokens: env.tokens, Navigator: nav, Logger: &env.logger})
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	env.api = api
	env.gate = session.NewGate(env.tokens, nav)
	return env, nil
}

// requireSession runs the session gate for role
func (e *runEnv) requireSession(role tokenstore.Role) error {
	if !e.gate.EnsureAuthenticated(role) {
		return errNotLoggedIn
	}
	return nil
}

// defaultTokenStore prefers the keychain and falls back to the session file
func defaultTokenStore(cfg *userconfig.UserConfig) (*tokenstore.TokenStore, error) {
	if cfg.TokenStore == userconfig.TokenStoreKeyring && tokenstore.KeyringAvailable("") {
		return tokenstore.New(tokenstore.NewKeyringStorage("")), nil
	}

	path, err := tokenstore.DefaultFilePath()
	if err != nil {
		return nil, err
	}
	return tokenstore.New(tokenstore.NewFileStorage(path)), nil
}

// loginHint is the terminal's version of "navigate to the login page"
type loginHint struct {
	w io.Writer
}

func (h loginHint) Navigate(target string) {
	cmd := "learnhub login"
	if target == tokenstore.AdminLoginPath {
		cmd = "learnhub admin login"
	}
	fmt.Fprintf(h.w, "Not logged in or session expired. Run '%s' to sign in.\n", cmd)
}
