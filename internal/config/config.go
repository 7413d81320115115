package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
	} `mapstructure:"database"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Recommendation struct {
		// DefaultLimit is the number of results returned when the caller
		// does not ask for a specific count.
		DefaultLimit int `mapstructure:"default_limit"`
	} `mapstructure:"recommendation"`

	Enrichment struct {
		Enabled        bool   `mapstructure:"enabled"`
		Provider       string `mapstructure:"provider"` // "openai" or "gemini"
		Model          string `mapstructure:"model"`
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		GoogleApiKey   string `mapstructure:"google_api_key"`
		MaxTokens      int    `mapstructure:"max_tokens"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		MaxSentences   int    `mapstructure:"max_sentences"`
	} `mapstructure:"enrichment"`

	Catalog struct {
		// CategorizerEnabled turns on model-assisted category suggestion
		// for feed entries that arrive without one.
		CategorizerEnabled bool                   `mapstructure:"categorizer_enabled"`
		CategorizerModel   string                 `mapstructure:"categorizer_model"`
		Pricing            map[string]PricingInfo `mapstructure:"pricing"`
	} `mapstructure:"catalog"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

// PricingInfo is the per-token price of a model, used for cost reporting.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// Allow the API keys to come from the conventional env vars without a
	// prefix or config file entry.
	viper.BindEnv("enrichment.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("enrichment.google_api_key", "GEMINI_API_KEY")

	viper.SetDefault("server.addr", "127.0.0.1")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("recommendation.default_limit", 10)
	viper.SetDefault("enrichment.provider", "openai")
	viper.SetDefault("enrichment.model", "gpt-4o-mini")
	viper.SetDefault("enrichment.max_tokens", 150)
	viper.SetDefault("enrichment.timeout_seconds", 10)
	viper.SetDefault("enrichment.max_sentences", 3)
	viper.SetDefault("catalog.categorizer_model", "gpt-4o-mini")
	viper.SetDefault("redis.address", "127.0.0.1:6379")
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"events": 5, "default": 1})

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
