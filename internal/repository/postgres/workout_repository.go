package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/octofit-tracker/internal/decode"
	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type workoutRepository struct {
	executor DBExecutor
}

func NewWorkoutRepository(db *sql.DB) *workoutRepository {
	return &workoutRepository{executor: db}
}

func NewWorkoutRepositoryWithTx(tx *sql.Tx) *workoutRepository {
	return &workoutRepository{executor: tx}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	exercises, err := encodeList(workout.Exercises)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workouts (name, description, exercises)
		VALUES ($1, $2, $3::jsonb)
		RETURNING id
	`

	return r.executor.QueryRowContext(ctx, query, workout.Name, workout.Description, exercises).Scan(&workout.ID)
}

// List returns workouts with exercises flattened to plain strings, whatever
// shape the stored JSON has.
func (r *workoutRepository) List(ctx context.Context, page domain.Page) ([]*domain.Workout, error) {
	query, args := withPage(`
		SELECT id, name, description, exercises
		FROM workouts
		ORDER BY id`, page)

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []*domain.Workout{}
	for rows.Next() {
		w := &domain.Workout{}
		var exercises []byte
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &exercises); err != nil {
			return nil, err
		}
		w.Exercises = decode.List(exercises)
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

func (r *workoutRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.executor, "workouts")
}

func (r *workoutRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.executor, "workouts")
}
