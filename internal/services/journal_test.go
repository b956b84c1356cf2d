package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/validation"
)

func strptr(s string) *string { return &s }

func seedEntry(t *testing.T, j *Journal, callerID int64, title, date string) *models.JournalEntry {
	t.Helper()
	payload := validation.EntryPayload{
		Title:   strptr(title),
		Content: strptr("content of " + title),
		Mood:    strptr("calm"),
	}
	if date != "" {
		payload.Date = strptr(date)
	}
	entry, err := j.Create(context.Background(), callerID, payload)
	require.NoError(t, err)
	return entry
}

func TestJournalCreate_RoundTrip(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())

	created, err := j.Create(context.Background(), 1, validation.EntryPayload{
		Title:   strptr("T"),
		Content: strptr("C"),
		Mood:    strptr("calm"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.UserID)
	assert.False(t, created.Date.IsZero())

	got, err := j.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, models.MoodCalm, got.Mood)
}

func TestJournalCreate_Invalid(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())

	_, err := j.Create(context.Background(), 1, validation.EntryPayload{
		Content: strptr("C"),
		Mood:    strptr("furious"),
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("title"))
	assert.True(t, verrs.Has("mood"))
}

func TestJournalOwnership(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	entry := seedEntry(t, j, 1, "mine", "")

	// Another user's access is Forbidden, not NotFound.
	_, err := j.Get(context.Background(), 2, entry.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	_, err = j.Update(context.Background(), 2, entry.ID, validation.EntryPayload{Mood: strptr("sad")})
	assert.ErrorIs(t, err, errs.ErrForbidden)
	err = j.Delete(context.Background(), 2, entry.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	// A missing entry stays NotFound for everyone.
	_, err = j.Get(context.Background(), 1, entry.ID+100)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestJournalUpdate_Partial(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	entry := seedEntry(t, j, 1, "original", "2024-03-01")

	updated, err := j.Update(context.Background(), 1, entry.ID, validation.EntryPayload{
		Mood: strptr("sad"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MoodSad, updated.Mood)
	assert.Equal(t, entry.Title, updated.Title)
	assert.Equal(t, entry.Content, updated.Content)
	assert.True(t, entry.Date.Equal(updated.Date))

	// Present-but-invalid fields still fail in partial mode.
	_, err = j.Update(context.Background(), 1, entry.ID, validation.EntryPayload{
		Mood: strptr("furious"),
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("mood"))

	// The date may be moved anywhere parseable, past or future.
	moved, err := j.Update(context.Background(), 1, entry.ID, validation.EntryPayload{
		Date: strptr("2099-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2099, moved.Date.Year())
}

func TestJournalDelete_SecondDeleteIsNotFound(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	entry := seedEntry(t, j, 1, "gone soon", "")

	require.NoError(t, j.Delete(context.Background(), 1, entry.ID))
	err := j.Delete(context.Background(), 1, entry.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestJournalList_NewestFirst(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	seedEntry(t, j, 1, "oldest", "2024-01-01")
	seedEntry(t, j, 1, "newest", "2024-02-01")
	seedEntry(t, j, 1, "middle", "2024-01-15")
	seedEntry(t, j, 2, "other user", "2024-01-20")

	entries, err := j.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Title)
	assert.Equal(t, "middle", entries[1].Title)
	assert.Equal(t, "oldest", entries[2].Title)
}

func TestJournalList_TieBrokenByID(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	first := seedEntry(t, j, 1, "first", "2024-01-01")
	second := seedEntry(t, j, 1, "second", "2024-01-01")

	entries, err := j.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestJournalListRange(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	seedEntry(t, j, 1, "jan 1", "2024-01-01")
	seedEntry(t, j, 1, "jan 15", "2024-01-15")
	seedEntry(t, j, 1, "feb 1", "2024-02-01")

	entries, err := j.ListRange(context.Background(), 1, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "jan 15", entries[0].Title)
	assert.Equal(t, "jan 1", entries[1].Title)

	_, err = j.ListRange(context.Background(), 1, "not-a-date", "2024-01-31")
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
	_, err = j.ListRange(context.Background(), 1, "2024-01-01", "also-bad")
	assert.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestJournalMoodCounts(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	j := NewJournal(store)

	for _, mood := range []string{"calm", "calm", "sad"} {
		_, err := j.Create(context.Background(), 1, validation.EntryPayload{
			Title:   strptr("t"),
			Content: strptr("c"),
			Mood:    strptr(mood),
		})
		require.NoError(t, err)
	}

	counts, err := j.MoodCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.MoodCalm])
	assert.Equal(t, int64(1), counts[models.MoodSad])
	// Every mood is reported even with no entries.
	assert.Len(t, counts, len(models.Moods))
	assert.Equal(t, int64(0), counts[models.MoodAngry])
}

func TestJournalUpdate_DateUnchangedWhenOmitted(t *testing.T) {
	t.Parallel()
	j := NewJournal(newMemStore())
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := seedEntry(t, j, 1, "dated", "2024-03-01")
	require.True(t, entry.Date.Equal(at))

	updated, err := j.Update(context.Background(), 1, entry.ID, validation.EntryPayload{
		Title: strptr("renamed"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Date.Equal(at))
}
