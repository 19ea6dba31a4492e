package cli

import (
	"fmt"

	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/infrastructure/logger"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log)

			if cfg.DB.Driver != "sqlite" {
				return database.MigrateUp(cfg.DB, log)
			}

			db, err := database.NewSQLiteConnection(cfg.DB.SQLitePath, cfg.App.Env, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			if err := database.SeedTreatments(db); err != nil {
				return fmt.Errorf("failed to seed treatments: %w", err)
			}
			log.Info("SQLite schema migrated")
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DB.Driver == "sqlite" {
				return fmt.Errorf("migrate down is only supported for postgres")
			}

			return database.MigrateDown(cfg.DB, steps, logger.New(cfg.Log))
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	return cmd
}
