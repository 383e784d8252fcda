package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
)

// SQLiteMessageRepo implements MessageRepo using a SQLite database.
type SQLiteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo creates a new SQLiteMessageRepo.
func NewSQLiteMessageRepo(db *sql.DB) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: db}
}

func (r *SQLiteMessageRepo) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (id, team_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.TeamID,
		m.AuthorID,
		m.Content,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `SELECT id, team_id, author_id, content, created_at FROM messages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var m domain.Message
	var createdAtStr string
	err := row.Scan(&m.ID, &m.TeamID, &m.AuthorID, &m.Content, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("message: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning message: %w", err)
	}
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &m, nil
}

// ListByTeam returns the team's most recent messages in chronological order.
func (r *SQLiteMessageRepo) ListByTeam(ctx context.Context, teamID string, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, team_id, author_id, content, created_at FROM (
			SELECT id, team_id, author_id, content, created_at FROM messages
			WHERE team_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
		) ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages by team: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		var createdAtStr string
		if err := rows.Scan(&m.ID, &m.TeamID, &m.AuthorID, &m.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		var parseErr error
		m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return messages, nil
}

func (r *SQLiteMessageRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM messages WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}
