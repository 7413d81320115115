package cmd

import (
	"context"
	"fmt"
	"os"

	"giftwise/internal/app"
	"giftwise/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "giftwise",
	Short: "Giftwise CLI",
	Long:  `Giftwise ranks a gift catalog against stated preferences and a learned behavioral profile, with explainable scores.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Custom context key type to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stashed by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity and other diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := appInstance.CatalogStore.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("primary database unreachable: %w", err)
		}
		fmt.Println("Primary database: OK")

		if appInstance.Enricher.Enabled() {
			fmt.Printf("Enrichment: enabled (%s)\n", appInstance.Enricher.Name())
		} else {
			fmt.Println("Enrichment: disabled")
		}

		if appInstance.Categorizer != nil {
			fmt.Println("Catalog categorizer: enabled")
		} else {
			fmt.Println("Catalog categorizer: disabled")
		}
		if appInstance.CostTracker != nil {
			if total, err := appInstance.CostTracker.TotalCost(cmd.Context()); err == nil {
				fmt.Printf("Model spend this session: $%.4f\n", total)
			}
		}
		return nil
	},
}
