package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "learnhub"
	configFileName = "config.yaml"

	DefaultAPIURL = "http://localhost:5000"
)

// Token store backends
const (
	TokenStoreKeyring = "keyring"
	TokenStoreFile    = "file"
)

// UserConfig represents the user's local configuration stored in ~/.config/learnhub/config.yaml
type UserConfig struct {
	APIURL     string `yaml:"api_url"`
	TokenStore string `yaml:"token_store,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file and applies environment overrides
// (LEARNHUB_API_URL, LEARNHUB_TOKEN_STORE, also read from .env).
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration at path and applies env overrides and defaults
func LoadFrom(configPath string) (*UserConfig, error) {
	_ = godotenv.Load(".env")

	cfg, err := ReadFrom(configPath)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("LEARNHUB_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LEARNHUB_TOKEN_STORE")); v != "" {
		cfg.TokenStore = v
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.TokenStore == "" {
		cfg.TokenStore = TokenStoreKeyring
	}
	if cfg.TokenStore != TokenStoreKeyring && cfg.TokenStore != TokenStoreFile {
		return nil, fmt.Errorf("invalid token_store %q, must be one of: keyring, file", cfg.TokenStore)
	}

	return cfg, nil
}

// ReadFrom returns only what is stored at path: no env overrides, no defaults.
// Use it when editing the file.
func ReadFrom(configPath string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Missing file is an empty config
	case err != nil:
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse user config file: %w", err)
		}
	}
	return cfg, nil
}

// SaveTo writes the configuration to path
func SaveTo(configPath string, cfg *UserConfig) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}
