package models

import "time"

// Mood is one of the five closed mood tags an entry can carry.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
)

// Moods lists every valid mood value.
var Moods = []Mood{MoodCalm, MoodHappy, MoodNeutral, MoodSad, MoodAngry}

// Valid reports whether m is one of the closed enum values.
func (m Mood) Valid() bool {
	switch m {
	case MoodCalm, MoodHappy, MoodNeutral, MoodSad, MoodAngry:
		return true
	}
	return false
}

// JournalEntry represents a private journaling entry for a user.
// Ownership (UserID) is set at creation and never changes.
type JournalEntry struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Mood    Mood      `json:"mood"`
	Date    time.Time `json:"date"`
}

// EntryPatch holds the fields of a partial update. A nil field is left
// untouched.
type EntryPatch struct {
	Title   *string
	Content *string
	Mood    *Mood
	Date    *time.Time
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Mood == nil && p.Date == nil
}
