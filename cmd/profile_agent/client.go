package main

import (
	"context"
	"fmt"
	"os"

	"github.com/candyhouse/talent-profile/internal/client"
	"github.com/candyhouse/talent-profile/internal/config"
	"go.uber.org/zap"
)

const defaultBaseURLHint = config.DefaultBaseURL

// clientConfig merges flags and environment over the config file.
func clientConfig() (config.Config, error) {
	var fileCfg config.Config
	if cfgFile != "" {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	flags := config.Config{
		BaseURL: firstNonEmpty(baseURL, os.Getenv("TALENT_API_URL")),
		Token:   firstNonEmpty(token, os.Getenv("TALENT_TOKEN")),
		Timeout: config.Duration(httpTimeout),
		Verbose: verbose,
	}
	merged := flags.MergeWithDefaults(fileCfg)
	merged.Verbose = merged.Verbose || fileCfg.Verbose
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newAPIClient builds a client and, when no token is configured but
// credentials are, logs in first.
func newAPIClient(ctx context.Context, cfg config.Config) (*client.Client, error) {
	c, err := client.New(cfg.BaseURL, &client.Options{
		Timeout: cfg.Timeout.Std(),
		Token:   cfg.Token,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Token == "" && cfg.Username != "" {
		logger.Debug("logging in with configured credentials", zap.String("username", cfg.Username))
		if _, err := c.Login(ctx, cfg.Username, cfg.Password); err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
	}
	return c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
