package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/learncards/internal/platform/logger"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. It serves the deck page at / and a JSON API under
/api. Every visitor gets their own deck, kept in memory and bound to a session
cookie. Idle sessions are removed on the configured sweep schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		log, err := logger.Setup(cfg.Server)
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}

		log.Info("Server configuration loaded",
			"port", cfg.Server.Port,
			"log_level", cfg.Server.LogLevel)

		app, err := newApplication(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return app.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port (overrides server.port)")
}
