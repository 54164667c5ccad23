package cmd

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cardkeep/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Cardkeep as an HTTP API server",
	Long: `Starts an HTTP server exposing the tagging surface and card CRUD
via a RESTful API. Allows interaction from the UI layer or other tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // Includes logger and recovery middleware

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			// The tagging surface: always answers 200 with a TagResult on
			// recoverable failure, 4xx only for bad input.
			v1.POST("/tag", apiHandler.TagHandler)

			itemGroup := v1.Group("/items")
			{
				itemGroup.POST("", apiHandler.CreateItemHandler)
				itemGroup.GET("", apiHandler.ListItemsHandler)
				itemGroup.GET("/watch", apiHandler.WatchItemsHandler)
				itemGroup.GET("/:id", apiHandler.GetItemHandler)
				itemGroup.PUT("/:id", apiHandler.UpdateItemHandler)
				itemGroup.DELETE("/:id", apiHandler.DeleteItemHandler)
			}
		}

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		if serveAddr == "" {
			serveAddr = appInstance.Config.Server.Addr
		}
		if servePort == "" {
			servePort = appInstance.Config.Server.Port
		}
		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("Starting Cardkeep API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			log.Errorf("Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}

		log.Info("Cardkeep API server stopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	bindServeFlags(serveCmd.Flags())
}

func bindServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serveAddr, "addr", "", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	fs.StringVar(&servePort, "port", "", "Port to listen on")
}
