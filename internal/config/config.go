package config

import (
	"errors"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL = "https://api.replicate.com/v1"
	defaultModel   = "black-forest-labs/flux-schnell"
)

var ErrMissingToken = errors.New("REPLICATE_API_TOKEN is not set")

// Config captures the immutable runtime settings for the server.
type Config struct {
	APIToken string `mapstructure:"api_token"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

// Load reads configuration from REPLICATE_* environment variables. The API
// token is required; everything else has a default.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPLICATE")
	v.AutomaticEnv()

	_ = v.BindEnv("api_token")
	_ = v.BindEnv("base_url")
	_ = v.BindEnv("model")

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("model", defaultModel)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.APIToken == "" {
		return Config{}, ErrMissingToken
	}
	return cfg, nil
}
