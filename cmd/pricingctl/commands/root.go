// Package commands implements the pricingctl operator CLI.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lamalux/pricing/internal/config"
	"github.com/lamalux/pricing/internal/core"
	"github.com/lamalux/pricing/internal/database"
	"github.com/lamalux/pricing/internal/logging"
	"github.com/lamalux/pricing/internal/store"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pricingctl",
	Short: "Operate the premium pricing database",
	Long: `pricingctl manages pricing datasets from the command line.

Examples:
  pricingctl import prices.xlsx --name "Q3 rates"
  pricingctl seed
  pricingctl status
  pricingctl datasets`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newService connects to the database and builds the pricing service.
// The caller must call the returned cleanup function.
func newService(ctx context.Context) (*core.Service, *config.Config, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.Logging.Format)

	if err := database.Migrate(cfg.Database.URL); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate schema: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("connected to database")
	return core.NewService(store.New(pool)), cfg, pool.Close, nil
}
