package cmd

import (
	"fmt"
	"net/http"

	"giftwise/internal/apihandlers"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	servePort string
)

// serveCmd runs Giftwise as an HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Giftwise as an HTTP API server",
	Long: `Starts an HTTP server exposing recommendations, insights, catalog
management and event recording as a RESTful API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default()
		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			v1.POST("/recommendations", apiHandler.RecommendationsHandler)
			v1.GET("/users/:id/insights", apiHandler.InsightsHandler)

			itemGroup := v1.Group("/items")
			{
				itemGroup.POST("", apiHandler.AddItemHandler)
				itemGroup.GET("", apiHandler.ListItemsHandler)
				itemGroup.GET("/:id", apiHandler.GetItemHandler)
			}

			v1.POST("/events", apiHandler.RecordEventHandler)
		}

		router.GET("/health", func(c *gin.Context) {
			if err := appInstance.CatalogStore.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Server.Port
		}

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("Starting Giftwise API server on http://%s", listenAddr)
		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
