package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
)

// SQLiteTokenRepo implements TokenRepo using a SQLite database.
// Token hashes are stored hex-encoded; plaintext tokens are never persisted.
type SQLiteTokenRepo struct {
	db *sql.DB
}

// NewSQLiteTokenRepo creates a new SQLiteTokenRepo.
func NewSQLiteTokenRepo(db *sql.DB) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: db}
}

func (r *SQLiteTokenRepo) Create(ctx context.Context, tokenHash []byte, userID, name string) error {
	query := `INSERT INTO api_tokens (token_hash, user_id, name, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, hex.EncodeToString(tokenHash), userID, name, nowUTC())
	if err != nil {
		return fmt.Errorf("inserting api token: %w", err)
	}
	return nil
}

// FindUser resolves a token hash to its owning user.
func (r *SQLiteTokenRepo) FindUser(ctx context.Context, tokenHash []byte) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE id = (SELECT user_id FROM api_tokens WHERE token_hash = ?)`
	row := r.db.QueryRowContext(ctx, query, hex.EncodeToString(tokenHash))

	var u domain.User
	var roleStr, createdAtStr string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &roleStr, &u.TeamID, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("api token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning token user: %w", err)
	}
	u.Role = domain.Role(roleStr)
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}

func (r *SQLiteTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM api_tokens WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("deleting api tokens: %w", err)
	}
	return nil
}
