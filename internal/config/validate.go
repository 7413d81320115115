package config

import (
	"errors"
	"fmt"
)

// Validate checks that every enabled feature has the configuration it needs.
func (c *Config) Validate() error {
	if c.Database.Primary.DSN == "" {
		return errors.New("database.primary.dsn is required")
	}

	if c.Recommendation.DefaultLimit <= 0 {
		return errors.New("recommendation.default_limit must be a positive integer")
	}

	if c.Enrichment.Enabled {
		switch c.Enrichment.Provider {
		case "openai":
			if c.Enrichment.OpenaiApiKey == "" {
				return errors.New("enrichment.openai_api_key is required when the openai enrichment provider is enabled")
			}
		case "gemini":
			if c.Enrichment.GoogleApiKey == "" {
				return errors.New("enrichment.google_api_key is required when the gemini enrichment provider is enabled")
			}
		default:
			return fmt.Errorf("unknown enrichment.provider %q (expected \"openai\" or \"gemini\")", c.Enrichment.Provider)
		}
		if c.Enrichment.Model == "" {
			return errors.New("enrichment.model is required when enrichment is enabled")
		}
		if c.Enrichment.MaxTokens <= 0 {
			return errors.New("enrichment.max_tokens must be positive")
		}
		if c.Enrichment.TimeoutSeconds <= 0 {
			return errors.New("enrichment.timeout_seconds must be positive")
		}
	}

	if c.Catalog.CategorizerEnabled {
		if c.Enrichment.OpenaiApiKey == "" {
			return errors.New("enrichment.openai_api_key is required when catalog.categorizer_enabled is set")
		}
		if c.Catalog.CategorizerModel == "" {
			return errors.New("catalog.categorizer_model is required when catalog.categorizer_enabled is set")
		}
	}

	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}

	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue %q must be positive", name)
		}
	}

	return nil
}
