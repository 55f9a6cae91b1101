package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type activityRepository struct {
	executor DBExecutor
}

func NewActivityRepository(db *sql.DB) *activityRepository {
	return &activityRepository{executor: db}
}

func NewActivityRepositoryWithTx(tx *sql.Tx) *activityRepository {
	return &activityRepository{executor: tx}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (username, activity_type, duration, calories, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.executor.QueryRowContext(ctx, query,
		activity.Username,
		activity.ActivityType,
		activity.Duration,
		activity.Calories,
		activity.Date,
	).Scan(&activity.ID)
}

func (r *activityRepository) List(ctx context.Context, page domain.Page) ([]*domain.Activity, error) {
	query, args := withPage(`
		SELECT id, username, activity_type, duration, calories, date
		FROM activities
		ORDER BY id`, page)

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*domain.Activity{}
	for rows.Next() {
		a := &domain.Activity{}
		if err := rows.Scan(&a.ID, &a.Username, &a.ActivityType, &a.Duration, &a.Calories, &a.Date); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func (r *activityRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.executor, "activities")
}

func (r *activityRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.executor, "activities")
}
