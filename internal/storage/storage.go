// Package storage is the only component that issues database reads and
// writes. Everything else depends on the Storage interface.
package storage

import (
	"context"
	"time"

	"github.com/moodtrail/moodtrail-backend/internal/models"
)

// Storage is the persistence gateway. Every operation is a single-row
// scoped transaction; absence is reported via errs.ErrNotFound and
// username collisions via errs.ErrConflict.
type Storage interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser relies on the database uniqueness constraint so two
	// concurrent registrations of the same name cannot both succeed.
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)

	// CreateJournalEntry stores the entry, assigning the id and
	// defaulting the timestamp to now when date is nil.
	CreateJournalEntry(ctx context.Context, userID int64, title, content string, mood models.Mood, date *time.Time) (*models.JournalEntry, error)
	GetJournalEntry(ctx context.Context, id int64) (*models.JournalEntry, error)
	// ListJournalEntries returns the user's entries newest-first, ties
	// broken by id so repeated identical queries return stable output.
	ListJournalEntries(ctx context.Context, userID int64) ([]models.JournalEntry, error)
	// ListJournalEntriesInRange filters to start <= date <= end, same ordering.
	ListJournalEntriesInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.JournalEntry, error)
	// UpdateJournalEntry changes only the supplied fields.
	UpdateJournalEntry(ctx context.Context, id int64, patch models.EntryPatch) (*models.JournalEntry, error)
	// DeleteJournalEntry reports whether a row was actually removed.
	DeleteJournalEntry(ctx context.Context, id int64) (bool, error)
	// CountEntriesByMood returns per-mood entry counts for one user.
	CountEntriesByMood(ctx context.Context, userID int64) (map[models.Mood]int64, error)
}
