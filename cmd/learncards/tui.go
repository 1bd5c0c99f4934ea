package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/learncards/internal/config"
	"github.com/phrazzld/learncards/internal/domain/chunking"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/tui"
)

var (
	tuiLogFile  string
	tuiLogLevel string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run learncards in the terminal",
	Long: `Run a terminal UI that owns a single deck. No server is started and
nothing is kept after exit.

Key bindings:
  Ctrl+S          Create learning cards
  Arrows / hjkl   Move between cards
  Enter / Space   Flip the selected card
  r               Start over
  q               Quit (once cards exist)
  Ctrl+C          Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The terminal belongs to the UI, so logs only go to a file.
		var w io.Writer = io.Discard
		if tuiLogFile != "" {
			f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		log, err := logger.SetupWithWriter(config.ServerConfig{
			LogLevel:  tuiLogLevel,
			LogFormat: "text",
		}, w)
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}

		return tui.Run(chunking.NewDefaultChunker(), log)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file")
	tuiCmd.Flags().StringVar(&tuiLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
