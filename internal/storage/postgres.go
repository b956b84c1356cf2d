package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a violated unique constraint.
const uniqueViolation = "23505"

const entryColumns = "id, user_id, title, content, mood, date"

// Postgres implements Storage over a lib/pq connection pool.
type Postgres struct {
	db *sql.DB
}

var _ Storage = (*Postgres)(nil)

// NewPostgres wraps an already-connected pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Postgres) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`, username, passwordHash).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, errs.ErrConflict
		}
		return nil, err
	}
	return &u, nil
}

func (s *Postgres) CreateJournalEntry(ctx context.Context, userID int64, title, content string, mood models.Mood, date *time.Time) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (user_id, title, content, mood, date)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING `+entryColumns+`
	`, userID, title, content, mood, date).Scan(
		&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.Date)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Postgres) GetJournalEntry(ctx context.Context, id int64) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries WHERE id = $1
	`, id).Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Postgres) ListJournalEntries(ctx context.Context, userID int64) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Postgres) ListJournalEntriesInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM journal_entries
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Postgres) UpdateJournalEntry(ctx context.Context, id int64, patch models.EntryPatch) (*models.JournalEntry, error) {
	if patch.Empty() {
		return s.GetJournalEntry(ctx, id)
	}

	var set []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Mood != nil {
		add("mood", *patch.Mood)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE journal_entries SET %s WHERE id = $%d
		RETURNING `+entryColumns+`
	`, strings.Join(set, ", "), len(args))

	var e models.JournalEntry
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Postgres) DeleteJournalEntry(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Postgres) CountEntriesByMood(ctx context.Context, userID int64) (map[models.Mood]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mood, COUNT(*) FROM journal_entries
		WHERE user_id = $1
		GROUP BY mood
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Mood]int64, len(models.Moods))
	for rows.Next() {
		var mood models.Mood
		var n int64
		if err := rows.Scan(&mood, &n); err != nil {
			return nil, err
		}
		counts[mood] = n
	}
	return counts, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
