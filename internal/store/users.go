package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
)

// UserStore owns the per-user ledger document
type UserStore struct {
	mu   sync.Mutex
	path string
}

// NewUserStore creates a user store rooted in dataDir
func NewUserStore(dataDir string) *UserStore {
	return &UserStore{path: filepath.Join(dataDir, "users.json")}
}

// load must be called with s.mu held. Read or parse failures fall back
// to an empty document so a corrupt file never takes the bot down.
func (s *UserStore) load() map[string]*UserRecord {
	users := make(map[string]*UserRecord)
	if _, err := readDocument(s.path, &users); err != nil {
		slog.Error("Failed to load users, using empty document", "error", err)
		return make(map[string]*UserRecord)
	}
	return users
}

// Get returns a user's record, creating the default lazily on first
// reference. Records are never deleted.
func (s *UserStore) Get(userID string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	rec, ok := users[userID]
	if !ok {
		rec = NewUserRecord()
		users[userID] = rec
		if err := writeDocument(s.path, users); err != nil {
			return *rec, err
		}
	}
	return *rec, nil
}

// Update applies fn to a single user's record inside the store's
// critical section and persists the whole document
func (s *UserStore) Update(userID string, fn func(*UserRecord) error) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	rec, ok := users[userID]
	if !ok {
		rec = NewUserRecord()
		users[userID] = rec
	}
	if err := fn(rec); err != nil {
		return *rec, err
	}
	if err := writeDocument(s.path, users); err != nil {
		return *rec, err
	}
	return *rec, nil
}

// UpdateTwo applies fn to two distinct user records in one critical
// section, so two-sided mutations like transfers stay atomic
func (s *UserStore) UpdateTwo(aID, bID string, fn func(a, b *UserRecord) error) (UserRecord, UserRecord, error) {
	if aID == bID {
		return UserRecord{}, UserRecord{}, fmt.Errorf("UpdateTwo requires distinct users")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	for _, id := range []string{aID, bID} {
		if _, ok := users[id]; !ok {
			users[id] = NewUserRecord()
		}
	}
	a, b := users[aID], users[bID]
	if err := fn(a, b); err != nil {
		return *a, *b, err
	}
	if err := writeDocument(s.path, users); err != nil {
		return *a, *b, err
	}
	return *a, *b, nil
}

// All returns a snapshot of every known user record
func (s *UserStore) All() (map[string]UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	out := make(map[string]UserRecord, len(users))
	for id, rec := range users {
		out[id] = *rec
	}
	return out, nil
}
