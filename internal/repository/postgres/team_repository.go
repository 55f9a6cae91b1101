package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bagdasarian/octofit-tracker/internal/decode"
	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type teamRepository struct {
	executor DBExecutor
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{executor: db}
}

func NewTeamRepositoryWithTx(tx *sql.Tx) *teamRepository {
	return &teamRepository{executor: tx}
}

// encodeList renders a string list as a JSON array, never null.
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	members, err := encodeList(team.Members)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO teams (name, members)
		VALUES ($1, $2::jsonb)
		RETURNING id
	`

	if err := r.executor.QueryRowContext(ctx, query, team.Name, members).Scan(&team.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTeamNameTaken
		}
		return err
	}

	return nil
}

// Update replaces the team's name and whole member list.
func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	members, err := encodeList(team.Members)
	if err != nil {
		return err
	}

	query := `
		UPDATE teams
		SET name = $2, members = $3::jsonb
		WHERE id = $1
		RETURNING id
	`

	err = r.executor.QueryRowContext(ctx, query, team.ID, team.Name, members).Scan(&team.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("team")
		}
		if isUniqueViolation(err) {
			return domain.ErrTeamNameTaken
		}
		return err
	}

	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	dbID, err := stringIDToInt(id)
	if err != nil {
		return nil, domain.NewNotFoundError("team")
	}

	query := `
		SELECT id, name, members
		FROM teams
		WHERE id = $1
	`

	team := &domain.Team{}
	var members []byte
	err = r.executor.QueryRowContext(ctx, query, dbID).Scan(&team.ID, &team.Name, &members)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("team")
		}
		return nil, err
	}
	team.Members = decode.List(members)

	return team, nil
}

func (r *teamRepository) List(ctx context.Context, page domain.Page) ([]*domain.Team, error) {
	query, args := withPage(`
		SELECT id, name, members
		FROM teams
		ORDER BY id`, page)

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []*domain.Team{}
	for rows.Next() {
		team := &domain.Team{}
		var members []byte
		if err := rows.Scan(&team.ID, &team.Name, &members); err != nil {
			return nil, err
		}
		team.Members = decode.List(members)
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

func (r *teamRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.executor, "teams")
}

func (r *teamRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.executor, "teams")
}
