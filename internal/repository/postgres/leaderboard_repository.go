package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type leaderboardRepository struct {
	executor DBExecutor
}

func NewLeaderboardRepository(db *sql.DB) *leaderboardRepository {
	return &leaderboardRepository{executor: db}
}

func NewLeaderboardRepositoryWithTx(tx *sql.Tx) *leaderboardRepository {
	return &leaderboardRepository{executor: tx}
}

func (r *leaderboardRepository) Create(ctx context.Context, entry *domain.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboard (username, score)
		VALUES ($1, $2)
		RETURNING id
	`

	return r.executor.QueryRowContext(ctx, query, entry.Username, entry.Score).Scan(&entry.ID)
}

// List returns entries in insertion order; rank is assigned by the reader.
func (r *leaderboardRepository) List(ctx context.Context, page domain.Page) ([]*domain.LeaderboardEntry, error) {
	query, args := withPage(`
		SELECT id, username, score
		FROM leaderboard
		ORDER BY id`, page)

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.LeaderboardEntry{}
	for rows.Next() {
		e := &domain.LeaderboardEntry{}
		if err := rows.Scan(&e.ID, &e.Username, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *leaderboardRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.executor, "leaderboard")
}

func (r *leaderboardRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.executor, "leaderboard")
}
