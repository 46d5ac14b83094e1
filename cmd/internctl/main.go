// Command internctl administers the tracker database: schema migrations,
// sample data, job postings, user roles and applicant count checks.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/internal/config"
	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/cuongbtq/interniq-be/shared/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const app = "internctl"

// Actual version can be specified in build command.
var version = "unknown"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "internctl manages the internship tracker database",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "path to the api-service configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newCreateJobCmd(opts),
		newPromoteCmd(opts),
		newVerifyCountsCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// env is what every database command works with
type env struct {
	logger *slog.Logger
	client *database.Client
	store  *storage.Storage
}

func (e *env) Close() {
	_ = e.client.Close()
}

// openEnv loads configuration and connects to the configured database
func openEnv(opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateDatabaseConfig(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := "warn"
	if opts.debug {
		level = "debug"
	}
	appLogger, err := logger.New(&logger.Config{
		Level:      level,
		Format:     "console",
		Output:     "stderr",
		Service:    app,
		TimeFormat: time.Kitchen,
		NoColor:    cfg.Logging.NoColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := database.NewClient(cfg.Database.ClientConfig(), appLogger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &env{
		logger: appLogger.Logger,
		client: client,
		store:  storage.NewStorage(client),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
