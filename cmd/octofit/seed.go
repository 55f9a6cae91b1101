package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/db"
	"github.com/bagdasarian/octofit-tracker/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		file      string
		noMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Clear all tables and load the fixture set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := loadFixtures(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.NewPostgres(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if !noMigrate {
				if err := db.Migrate(ctx, database, a.logger); err != nil {
					return err
				}
			}

			counts, err := seed.NewSeeder(database, a.logger).Run(ctx, fixtures)
			if err != nil {
				return err
			}
			a.logger.Debug("seed finished", zap.Any("counts", counts))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d teams, %d activities, %d leaderboard entries, %d workouts.\n",
				counts.Users, counts.Teams, counts.Activities, counts.Leaderboard, counts.Workouts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture file (default: built-in test data)")
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "Skip applying migrations before seeding")
	return cmd
}

func loadFixtures(file string) (*seed.Fixtures, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}
