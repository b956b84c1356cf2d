package services

import (
	"context"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/storage"
	"github.com/moodtrail/moodtrail-backend/internal/validation"
)

// Journal implements the entry operations together with the ownership
// policy: an entry that does not exist is ErrNotFound, an entry owned
// by someone else is ErrForbidden, and the two are never folded into
// one generic error.
type Journal struct {
	store storage.Storage
}

func NewJournal(store storage.Storage) *Journal {
	return &Journal{store: store}
}

// Create stores a new entry for the caller. The owner always comes
// from the resolved session; an owner field in the payload is ignored.
func (j *Journal) Create(ctx context.Context, callerID int64, payload validation.EntryPayload) (*models.JournalEntry, error) {
	entry, verrs := validation.ValidateEntry(payload)
	if verrs != nil {
		return nil, verrs
	}
	return j.store.CreateJournalEntry(ctx, callerID, entry.Title, entry.Content, entry.Mood, entry.Date)
}

// Get loads an entry after verifying the caller owns it.
func (j *Journal) Get(ctx context.Context, callerID, entryID int64) (*models.JournalEntry, error) {
	return j.authorize(ctx, callerID, entryID)
}

// Update applies a partial update after the ownership check. Only the
// supplied fields change.
func (j *Journal) Update(ctx context.Context, callerID, entryID int64, payload validation.EntryPayload) (*models.JournalEntry, error) {
	if _, err := j.authorize(ctx, callerID, entryID); err != nil {
		return nil, err
	}
	patch, verrs := validation.ValidateEntryPatch(payload)
	if verrs != nil {
		return nil, verrs
	}
	return j.store.UpdateJournalEntry(ctx, entryID, *patch)
}

// Delete removes an entry after the ownership check. Deleting an id
// that is already gone is ErrNotFound.
func (j *Journal) Delete(ctx context.Context, callerID, entryID int64) error {
	if _, err := j.authorize(ctx, callerID, entryID); err != nil {
		return err
	}
	removed, err := j.store.DeleteJournalEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if !removed {
		return errs.ErrNotFound
	}
	return nil
}

// List returns all of the caller's entries, newest first.
func (j *Journal) List(ctx context.Context, callerID int64) ([]models.JournalEntry, error) {
	return j.store.ListJournalEntries(ctx, callerID)
}

// ListRange returns the caller's entries with start <= date <= end.
// Either bound failing to parse is ErrInvalidRange.
func (j *Journal) ListRange(ctx context.Context, callerID int64, start, end string) ([]models.JournalEntry, error) {
	startAt, err := validation.ParseDate(start)
	if err != nil {
		return nil, errs.ErrInvalidRange
	}
	endAt, err := validation.ParseDate(end)
	if err != nil {
		return nil, errs.ErrInvalidRange
	}
	return j.store.ListJournalEntriesInRange(ctx, callerID, startAt, endAt)
}

// MoodCounts returns how many of the caller's entries carry each mood.
// Moods with no entries are present with a zero count.
func (j *Journal) MoodCounts(ctx context.Context, callerID int64) (map[models.Mood]int64, error) {
	counts, err := j.store.CountEntriesByMood(ctx, callerID)
	if err != nil {
		return nil, err
	}
	for _, mood := range models.Moods {
		if _, ok := counts[mood]; !ok {
			counts[mood] = 0
		}
	}
	return counts, nil
}

// authorize loads the entry and compares its owner to the caller.
// Existence is checked first so a missing entry stays a 404 while
// someone else's entry is a 403.
func (j *Journal) authorize(ctx context.Context, callerID, entryID int64) (*models.JournalEntry, error) {
	entry, err := j.store.GetJournalEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != callerID {
		return nil, errs.ErrForbidden
	}
	return entry, nil
}
