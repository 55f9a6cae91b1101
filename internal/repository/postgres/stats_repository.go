package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type statsRepository struct {
	executor DBExecutor
}

func NewStatsRepository(db *sql.DB) *statsRepository {
	return &statsRepository{executor: db}
}

// GetUserActivityStats includes users with no activities, highest calorie
// total first.
func (r *statsRepository) GetUserActivityStats(ctx context.Context) ([]*domain.UserActivityStat, error) {
	query := `
		SELECT u.id, u.username, COUNT(a.id) AS activity_count, COALESCE(SUM(a.calories), 0) AS calories
		FROM users u
		LEFT JOIN activities a ON a.username = u.username
		GROUP BY u.id, u.username
		ORDER BY calories DESC, u.username
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []*domain.UserActivityStat{}
	for rows.Next() {
		stat := &domain.UserActivityStat{}
		if err := rows.Scan(&stat.UserID, &stat.Username, &stat.Activities, &stat.Calories); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

func (r *statsRepository) GetActivityTypeStats(ctx context.Context) ([]*domain.ActivityTypeStat, error) {
	query := `
		SELECT activity_type, COUNT(id) AS count, COALESCE(SUM(calories), 0) AS calories
		FROM activities
		GROUP BY activity_type
		ORDER BY activity_type
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []*domain.ActivityTypeStat{}
	for rows.Next() {
		stat := &domain.ActivityTypeStat{}
		if err := rows.Scan(&stat.ActivityType, &stat.Count, &stat.Calories); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
