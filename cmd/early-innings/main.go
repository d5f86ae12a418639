// Package main provides the entry point for the early-innings prediction service.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/early-innings/internal/config"
	"github.com/yourusername/early-innings/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:          "early-innings",
	Short:        "Early-inning MLB run predictions",
	Long:         `Serve and compute early-inning run predictions for the MLB slate of a day.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(loaded); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		// stdout carries command output for everything but the server
		if cmd.Name() != "serve" {
			appLog.SetOutput(cmd.ErrOrStderr())
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, GitCommit)
	rootCmd.AddCommand(serveCmd, predictCmd, refreshCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
