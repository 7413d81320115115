package app

import (
	"context"
	"fmt"
	"time"

	"giftwise/internal/config"
	"giftwise/internal/costtracker"
	"giftwise/internal/services"
	"giftwise/internal/store"
	"giftwise/internal/store/primary"
	"giftwise/pkg/categorizer"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// App holds the wired application: stores, the enrichment capability, and
// the initialized services.
type App struct {
	Config *config.Config

	CatalogStore     store.CatalogStore
	InteractionStore store.InteractionStore
	JobClient        store.JobClient

	Enricher    services.Enricher
	Categorizer categorizer.ItemCategorizer
	CostTracker costtracker.CostTracker

	RecommendationService *services.RecommendationService
	InsightsService       *services.InsightsService
	CatalogService        *services.CatalogService
	InteractionService    *services.InteractionService
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initEnricher(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initCategorizer()
	app.initCoreServices()

	log.Info("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.CatalogStore = ps
	a.InteractionStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

// initEnricher builds the configured text-generation capability. Disabled
// or unconfigured enrichment gets the null-object provider; ranking works
// identically either way, minus the generated explanations.
func (a *App) initEnricher() error {
	cfg := a.Config.Enrichment
	if !cfg.Enabled {
		log.Info("Enrichment is disabled; explanations will not be generated.")
		a.Enricher = services.NewNoopEnricher()
		return nil
	}

	switch cfg.Provider {
	case "openai":
		a.Enricher = services.NewOpenAIEnricher(cfg.OpenaiApiKey, cfg.Model, cfg.MaxTokens, cfg.MaxSentences)
	case "gemini":
		enricher, err := services.NewGeminiEnricher(cfg.GoogleApiKey, cfg.Model, cfg.MaxTokens, cfg.MaxSentences)
		if err != nil {
			return fmt.Errorf("init gemini enricher: %w", err)
		}
		a.Enricher = enricher
	default:
		return fmt.Errorf("unknown enrichment provider configured: %s", cfg.Provider)
	}

	if !a.Enricher.Enabled() {
		log.Warnf("Enrichment provider %q is configured but not usable (missing credentials). Falling back to disabled enrichment.", cfg.Provider)
	}
	return nil
}

// initCategorizer wires model-assisted categorization for feed imports.
// It shares the OpenAI credentials with enrichment and is optional.
func (a *App) initCategorizer() {
	a.CostTracker = costtracker.New()

	cfg := a.Config.Catalog
	if !cfg.CategorizerEnabled {
		return
	}
	if a.Config.Enrichment.OpenaiApiKey == "" {
		log.Warn("Catalog categorizer is enabled but no OpenAI API key is configured; feed entries without a category will be skipped.")
		return
	}

	pricing := make(map[string]costtracker.Pricing, len(cfg.Pricing))
	for model, p := range cfg.Pricing {
		pricing[model] = costtracker.Pricing{
			InputPerToken:  p.InputPerToken,
			OutputPerToken: p.OutputPerToken,
		}
	}

	client := openai.NewClient(a.Config.Enrichment.OpenaiApiKey)
	a.Categorizer = categorizer.NewLLMCategorizer(client, cfg.CategorizerModel, "", a.CostTracker, pricing)
	log.Infof("Catalog categorizer initialized with model %s.", cfg.CategorizerModel)
}

func (a *App) initCoreServices() {
	timeout := time.Duration(a.Config.Enrichment.TimeoutSeconds) * time.Second
	fanout := services.NewEnrichmentFanout(a.Enricher, timeout)

	a.RecommendationService = services.NewRecommendationService(a.CatalogStore, a.InteractionStore, fanout)
	a.InsightsService = services.NewInsightsService(a.InteractionStore, a.CatalogStore)
	a.CatalogService = services.NewCatalogService(a.CatalogStore)
	a.InteractionService = services.NewInteractionService(a.InteractionStore, a.JobClient)
}

func (a *App) cleanupPartialInit() {
	if a.JobClient != nil {
		a.JobClient.Close()
	}
	if closer, ok := a.Enricher.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Errorf("Error closing enricher: %v", err)
		}
	}
}
