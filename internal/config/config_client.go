package config

import (
	"fmt"
	"time"
)

// ClientConfig is the terminal client view of the configuration.
type ClientConfig struct {
	// ServerURL is the base URL of the UMAY HTTP API.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// RefreshInterval defines how often the record list refresh worker runs.
	RefreshInterval time.Duration
	// LogPath is the client log file.
	LogPath string
}

// GetClientConfig builds and validates the client configuration from env,
// flags, JSON and defaults. Server-only requirements are not checked.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		ServerURL:       cfg.Client.ServerURL,
		RequestTimeout:  cfg.Client.RequestTimeout,
		RefreshInterval: cfg.Client.RefreshInterval,
		LogPath:         cfg.Client.LogPath,
	}

	return clientCfg, clientCfg.validate()
}
