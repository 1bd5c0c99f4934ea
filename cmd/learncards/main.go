// Package main implements the learncards command, which turns a block of text
// into a deck of flippable learning cards. It serves the deck over HTTP or
// runs it in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/learncards/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "learncards",
	Short: "Turn text into learning cards",
	Long: `learncards splits a block of text into a handful of cards that can be
flipped between a short label and the text they hold.

Run "learncards serve" for the web interface or "learncards tui" for the
terminal interface.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file path (default: ./config.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

// loadConfig reads configuration from --config when given, otherwise from the
// working directory and environment.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
