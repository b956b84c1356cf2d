package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/storage"
)

// memStore is an in-memory Storage used by the service tests.
type memStore struct {
	mu        sync.Mutex
	users     map[int64]models.User
	entries   map[int64]models.JournalEntry
	nextUser  int64
	nextEntry int64
}

var _ storage.Storage = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]models.User{},
		entries: map[int64]models.JournalEntry{},
	}
}

func (m *memStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cpy := u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memStore) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return nil, errs.ErrConflict
		}
	}
	m.nextUser++
	u := models.User{ID: m.nextUser, Username: username, Password: passwordHash, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) CreateJournalEntry(_ context.Context, userID int64, title, content string, mood models.Mood, date *time.Time) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEntry++
	at := time.Now()
	if date != nil {
		at = *date
	}
	e := models.JournalEntry{ID: m.nextEntry, UserID: userID, Title: title, Content: content, Mood: mood, Date: at}
	m.entries[e.ID] = e
	return &e, nil
}

func (m *memStore) GetJournalEntry(_ context.Context, id int64) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) ListJournalEntries(_ context.Context, userID int64) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(e models.JournalEntry) bool { return e.UserID == userID }), nil
}

func (m *memStore) ListJournalEntriesInRange(_ context.Context, userID int64, start, end time.Time) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(e models.JournalEntry) bool {
		return e.UserID == userID && !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (m *memStore) UpdateJournalEntry(_ context.Context, id int64, patch models.EntryPatch) (*models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Mood != nil {
		e.Mood = *patch.Mood
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	m.entries[id] = e
	return &e, nil
}

func (m *memStore) DeleteJournalEntry(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func (m *memStore) CountEntriesByMood(_ context.Context, userID int64) (map[models.Mood]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[models.Mood]int64{}
	for _, e := range m.entries {
		if e.UserID == userID {
			counts[e.Mood]++
		}
	}
	return counts, nil
}

// collect filters and sorts newest-first with id tie-break, matching
// the Postgres ordering.
func (m *memStore) collect(keep func(models.JournalEntry) bool) []models.JournalEntry {
	out := []models.JournalEntry{}
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// memSessions is an in-memory Sessions used by the service tests.
type memSessions struct {
	mu      sync.Mutex
	byToken map[string]int64
	counter int
}

var _ Sessions = (*memSessions)(nil)

func newMemSessions() *memSessions {
	return &memSessions{byToken: map[string]int64{}}
}

func (s *memSessions) Create(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	token := "tok-" + strings.Repeat("x", s.counter)
	s.byToken[token] = userID
	return token, nil
}

func (s *memSessions) Get(_ context.Context, token string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byToken[token]
	return id, ok, nil
}

func (s *memSessions) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}
