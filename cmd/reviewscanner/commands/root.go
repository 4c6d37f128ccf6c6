package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ReviewScanner/internal/app"
	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/logging"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitInvalidURL = 2
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "reviewscanner",
	Short:         "reviewscanner extracts customer reviews from a product page.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $REVIEW_SCANNER_CONFIG)")
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	if errors.Is(err, domain.ErrInvalidURL) {
		return ExitInvalidURL
	}
	return ExitFailure
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Load(), nil
	}
	return config.LoadFrom(configPath)
}

// loadApp builds the application; logs go to stderr so stdout carries only results.
func loadApp() (*app.Application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return app.New(cfg, logger)
}
