package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/config"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

var (
	flagServiceURL string
	flagLogLevel   string
	flagLocale     string
)

var rootCmd = &cobra.Command{
	Use:           "bank-console",
	Short:         "Web console and CLI for the account-management service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServiceURL, "service-url", "", "account service base URL (overrides ACCOUNT_SERVICE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "display locale (overrides DISPLAY_LOCALE)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func RegisterCommands(cmds ...*cobra.Command) {
	for _, c := range cmds {
		rootCmd.AddCommand(c)
	}
}

// app is what every subcommand needs: configuration, a logger, the account
// service client and the renderer.
type app struct {
	config   *config.Config
	logger   *logrus.Logger
	client   *bankapi.Client
	renderer *view.Renderer
}

func newApp() (*app, error) {
	logger := logging.SetupLogging()

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
	}
	if flagServiceURL != "" {
		envConfig.AccountServiceURL = flagServiceURL
	}
	if flagLogLevel != "" {
		envConfig.LogLevel = flagLogLevel
	}
	if flagLocale != "" {
		envConfig.DisplayLocale = flagLocale
	}

	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	location, err := envConfig.Location()
	if err != nil {
		return nil, err
	}
	renderer, err := view.NewRenderer(view.NewFormatter(envConfig.DisplayLocale, location))
	if err != nil {
		return nil, err
	}

	return &app{
		config:   envConfig,
		logger:   logger,
		client:   bankapi.NewClient(envConfig.AccountServiceURL, nil, envConfig.RequestTimeout, logger),
		renderer: renderer,
	}, nil
}
