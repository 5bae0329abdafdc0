// Package cli implements the command-line interface for lolfetch.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/colthorp/lolfetch-go/internal/config"
	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/spf13/cobra"
)

// Global flags
var (
	verbose    bool
	quiet      bool
	raw        bool
	apiKey     string
	configPath string
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "lolfetch",
	Short:   "lolfetch – League of Legends stats in your terminal",
	Long:    `A neofetch-style summary of a League of Legends account: rank, recent matches, champion stats and mastery.`,
	Version: core.Version,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(core.NewLogger(os.Stderr, verbose))

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if apiKey != "" {
			loaded.APIKey = apiKey
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress messages")
	rootCmd.PersistentFlags().BoolVar(&raw, "raw", false, "Emit raw JSON instead of the formatted display")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", fmt.Sprintf("Riot API key (default: $%s)", core.APIKeyEnvVar))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+core.ConfigPath()+")")
}
