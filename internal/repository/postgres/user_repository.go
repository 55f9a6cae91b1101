package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type userRepository struct {
	executor DBExecutor
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{executor: db}
}

func NewUserRepositoryWithTx(tx *sql.Tx) *userRepository {
	return &userRepository{executor: tx}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, username, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.executor.QueryRowContext(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.Password,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}

	return nil
}

// Update writes name, username and email. The stored password is replaced
// only when user.Password is non-empty.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, email = $4,
			password = CASE WHEN $5 = '' THEN password ELSE $5 END
		WHERE id = $1
		RETURNING id
	`

	err := r.executor.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.Password,
	).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("user")
		}
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	dbID, err := stringIDToInt(id)
	if err != nil {
		return nil, domain.NewNotFoundError("user")
	}

	query := `
		SELECT id, name, username, email, password
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	err = r.executor.QueryRowContext(ctx, query, dbID).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context, page domain.Page) ([]*domain.User, error) {
	query, args := withPage(`
		SELECT id, name, username, email, password
		FROM users
		ORDER BY id`, page)

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.Password); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.executor, "users")
}

func (r *userRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.executor, "users")
}
