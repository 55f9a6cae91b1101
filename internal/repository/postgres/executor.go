package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx, so every repository
// can run inside or outside a transaction.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// stringIDToInt converts the string primary key used on the wire into the
// database id.
func stringIDToInt(stringID string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(stringID))
}

func intToStringID(id int) string {
	return strconv.Itoa(id)
}

// withPage appends LIMIT/OFFSET to query for a non-zero page.
func withPage(query string, page domain.Page) (string, []any) {
	if page.Limit <= 0 {
		return query, nil
	}
	return query + " LIMIT $1 OFFSET $2", []any{page.Limit, page.Offset}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func count(ctx context.Context, executor DBExecutor, table string) (int, error) {
	var n int
	if err := executor.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func deleteAll(ctx context.Context, executor DBExecutor, table string) error {
	if _, err := executor.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}
