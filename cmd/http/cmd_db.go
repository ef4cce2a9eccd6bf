package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"fsanano/go-orders/internal/config"
	"fsanano/go-orders/internal/database"
	"fsanano/go-orders/internal/logger"
	"fsanano/go-orders/internal/metrics"
	"fsanano/go-orders/internal/repository"
	"fsanano/go-orders/internal/seed"
)

type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB
}

// boot loads config and opens the database. m may be nil.
func boot(m *metrics.Metrics) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log)

	db, err := database.Open(cfg.Database, log, m)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return nil, err
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn().Err(err).Msg("failed to close database")
	}
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(nil)
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		a.log.Info().Msg("schema migrated")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, orders and offers from a JSON fixtures file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fx, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		a, err := boot(nil)
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}

		s := seed.NewSeeder(
			repository.NewTransactor(a.db),
			repository.NewUserRepository(a.db),
			repository.NewOrderRepository(a.db),
			repository.NewOfferRepository(a.db),
			a.log,
		)
		if err := s.Run(cmd.Context(), fx); err != nil {
			return err
		}

		users, orders, offers, err := s.Counts(cmd.Context())
		if err != nil {
			return err
		}
		a.log.Info().Int64("users", users).Int64("orders", orders).Int64("offers", offers).Msg("store totals")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures.json", "path to the fixtures file")
}
