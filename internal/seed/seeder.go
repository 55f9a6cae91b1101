package seed

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
	"github.com/bagdasarian/octofit-tracker/internal/repository/postgres"
)

// Counts reports how many rows of each kind were written.
type Counts struct {
	Users       int
	Teams       int
	Activities  int
	Leaderboard int
	Workouts    int
}

type Seeder struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSeeder(db *sql.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, logger: logger}
}

// Run replaces the contents of every table with f in one transaction.
func (s *Seeder) Run(ctx context.Context, f *Fixtures) (Counts, error) {
	var counts Counts

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	users := postgres.NewUserRepositoryWithTx(tx)
	teams := postgres.NewTeamRepositoryWithTx(tx)
	activities := postgres.NewActivityRepositoryWithTx(tx)
	leaderboard := postgres.NewLeaderboardRepositoryWithTx(tx)
	workouts := postgres.NewWorkoutRepositoryWithTx(tx)

	s.logger.Info("clearing existing data")
	for _, clear := range []func(context.Context) error{
		leaderboard.DeleteAll,
		activities.DeleteAll,
		teams.DeleteAll,
		users.DeleteAll,
		workouts.DeleteAll,
	} {
		if err := clear(ctx); err != nil {
			return counts, err
		}
	}

	for _, u := range f.Users {
		user := &domain.User{Name: u.Name, Username: u.Username, Email: u.Email, Password: u.Password}
		if err := users.Create(ctx, user); err != nil {
			return counts, fmt.Errorf("create user %s: %w", u.Username, err)
		}
		counts.Users++
	}

	for _, t := range f.Teams {
		team := &domain.Team{Name: t.Name, Members: t.Members}
		if err := teams.Create(ctx, team); err != nil {
			return counts, fmt.Errorf("create team %s: %w", t.Name, err)
		}
		counts.Teams++
	}

	for _, a := range f.Activities {
		date, err := a.date()
		if err != nil {
			return counts, err
		}
		activity := &domain.Activity{
			Username:     a.Username,
			ActivityType: a.ActivityType,
			Duration:     a.Duration,
			Calories:     a.Calories,
			Date:         date,
		}
		if err := activities.Create(ctx, activity); err != nil {
			return counts, fmt.Errorf("create activity for %s: %w", a.Username, err)
		}
		counts.Activities++
	}

	for _, e := range f.Leaderboard {
		entry := &domain.LeaderboardEntry{Username: e.Username, Score: e.Score}
		if err := leaderboard.Create(ctx, entry); err != nil {
			return counts, fmt.Errorf("create leaderboard entry for %s: %w", e.Username, err)
		}
		counts.Leaderboard++
	}

	for _, w := range f.Workouts {
		workout := &domain.Workout{Name: w.Name, Description: w.Description, Exercises: w.Exercises}
		if err := workouts.Create(ctx, workout); err != nil {
			return counts, fmt.Errorf("create workout %s: %w", w.Name, err)
		}
		counts.Workouts++
	}

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("commit seed: %w", err)
	}

	s.logger.Info("database seeded",
		zap.Int("users", counts.Users),
		zap.Int("teams", counts.Teams),
		zap.Int("activities", counts.Activities),
		zap.Int("leaderboard", counts.Leaderboard),
		zap.Int("workouts", counts.Workouts))
	return counts, nil
}
