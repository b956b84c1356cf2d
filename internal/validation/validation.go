// Package validation checks journal-entry payloads and user credentials
// before anything reaches storage. All checks are pure; every violated
// field is reported, not just the first.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moodtrail/moodtrail-backend/internal/models"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
	PasswordMaxLen = 100
	TitleMaxLen    = 255
)

// dateLayouts are tried in order when the date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FieldError names a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors aggregates every violation found in one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether a given field is among the violations.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// EntryPayload is the client-supplied shape of a journal entry.
// Pointer fields distinguish "absent" from "present but empty", which
// partial validation relies on.
type EntryPayload struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
	Date    *string `json:"date"`
}

// Entry is a normalized full payload. A nil Date means the caller
// supplied none and storage should default it to now.
type Entry struct {
	Title   string
	Content string
	Mood    models.Mood
	Date    *time.Time
}

// ParseDate parses a caller-supplied date string. An unparsable string
// is an error, never a silent fallback to now.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ValidateEntry checks a full create payload. It returns the normalized
// entry or every violated field.
func ValidateEntry(p EntryPayload) (*Entry, Errors) {
	var errs Errors
	var out Entry

	if p.Title == nil {
		errs = append(errs, FieldError{"title", "Title is required"})
	} else if title, fe := checkTitle(*p.Title); fe != nil {
		errs = append(errs, *fe)
	} else {
		out.Title = title
	}

	if p.Content == nil {
		errs = append(errs, FieldError{"content", "Journal content is required"})
	} else if content, fe := checkContent(*p.Content); fe != nil {
		errs = append(errs, *fe)
	} else {
		out.Content = content
	}

	if p.Mood == nil {
		errs = append(errs, FieldError{"mood", "Mood is required"})
	} else if mood, fe := checkMood(*p.Mood); fe != nil {
		errs = append(errs, *fe)
	} else {
		out.Mood = mood
	}

	if p.Date != nil {
		t, err := ParseDate(*p.Date)
		if err != nil {
			errs = append(errs, FieldError{"date", "Invalid date format"})
		} else {
			out.Date = &t
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

// ValidateEntryPatch checks an update payload. Any subset of fields may
// be omitted, but present fields must still satisfy their rules.
func ValidateEntryPatch(p EntryPayload) (*models.EntryPatch, Errors) {
	var errs Errors
	var patch models.EntryPatch

	if p.Title != nil {
		if title, fe := checkTitle(*p.Title); fe != nil {
			errs = append(errs, *fe)
		} else {
			patch.Title = &title
		}
	}
	if p.Content != nil {
		if content, fe := checkContent(*p.Content); fe != nil {
			errs = append(errs, *fe)
		} else {
			patch.Content = &content
		}
	}
	if p.Mood != nil {
		if mood, fe := checkMood(*p.Mood); fe != nil {
			errs = append(errs, *fe)
		} else {
			patch.Mood = &mood
		}
	}
	if p.Date != nil {
		t, err := ParseDate(*p.Date)
		if err != nil {
			errs = append(errs, FieldError{"date", "Invalid date format"})
		} else {
			patch.Date = &t
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &patch, nil
}

func checkTitle(s string) (string, *FieldError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &FieldError{"title", "Title is required"}
	}
	if utf8.RuneCountInString(s) > TitleMaxLen {
		return "", &FieldError{"title", "Title is too long"}
	}
	return s, nil
}

func checkContent(s string) (string, *FieldError) {
	if strings.TrimSpace(s) == "" {
		return "", &FieldError{"content", "Journal content is required"}
	}
	return s, nil
}

func checkMood(s string) (models.Mood, *FieldError) {
	mood := models.Mood(s)
	if !mood.Valid() {
		return "", &FieldError{"mood", "Mood must be one of: calm, happy, neutral, sad, angry"}
	}
	return mood, nil
}

// ValidateCredentials checks a username/password pair for login and
// registration.
func ValidateCredentials(username, password string) Errors {
	var errs Errors
	// Bounds count characters, not bytes, so multibyte names measure
	// the same as ASCII ones.
	switch n := utf8.RuneCountInString(username); {
	case n < UsernameMinLen:
		errs = append(errs, FieldError{"username", "Username must be at least 3 characters"})
	case n > UsernameMaxLen:
		errs = append(errs, FieldError{"username", "Username too long"})
	}
	switch n := utf8.RuneCountInString(password); {
	case n < PasswordMinLen:
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	case n > PasswordMaxLen:
		errs = append(errs, FieldError{"password", "Password too long"})
	}
	return errs
}

// ValidateRegistration additionally requires the confirmation field to
// match the password exactly, checked before hashing.
func ValidateRegistration(username, password, confirmPassword string) Errors {
	errs := ValidateCredentials(username, password)
	if password != confirmPassword {
		errs = append(errs, FieldError{"confirmPassword", "Passwords do not match"})
	}
	return errs
}
