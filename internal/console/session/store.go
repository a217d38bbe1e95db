// Package session holds the operator's bearer token for the lifetime of an
// authenticated session and persists it across process restarts.
//
// The store trusts the credential for a bounded lifetime (default 24h)
// independent of server-side expiry: an authenticated call failing with 401
// is what actually invalidates it. Subscribers are notified whenever the
// store flips between authenticated and unauthenticated.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/userdeck/userdeck/internal/logging"
)

// Store is a dependency-injected session container. It is safe for
// concurrent use; tests instantiate isolated stores against temp files.
type Store struct {
	path string
	ttl  time.Duration
	log  logging.Logger

	// now is a seam for expiry tests.
	now func() time.Time

	mu      sync.RWMutex
	token   string
	savedAt time.Time
	subs    map[int]func(authenticated bool)
	nextSub int
}

// persisted is the on-disk shape of a session credential.
type persisted struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// NewStore opens (or creates the parent directory for) the session file at
// path. An existing credential is loaded; an expired or unreadable one is
// treated as absent.
func NewStore(path string, ttl time.Duration, log logging.Logger) *Store {
	s := &Store{
		path: path,
		ttl:  ttl,
		log:  log,
		now:  time.Now,
		subs: make(map[int]func(bool)),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(context.Background(), "session file unreadable, starting unauthenticated", "path", s.path, "error", err)
		}
		return
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn(context.Background(), "session file corrupt, starting unauthenticated", "path", s.path, "error", err)
		return
	}

	s.token = p.Token
	s.savedAt = p.SavedAt
}

// SetToken stores the credential, persists it, and signals "authenticated".
func (s *Store) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}

	s.mu.Lock()
	s.token = token
	s.savedAt = s.now()
	err := s.persist()
	s.mu.Unlock()

	s.notify(true)
	return err
}

// Token returns the current credential, or "" when none is held or the held
// one has outlived its bounded lifetime.
func (s *Store) Token() string {
	s.mu.RLock()
	token, savedAt := s.token, s.savedAt
	s.mu.RUnlock()

	if token == "" {
		return ""
	}
	if s.ttl > 0 && s.now().Sub(savedAt) > s.ttl {
		s.log.Info(context.Background(), "stored session credential outlived its lifetime")
		return ""
	}
	return token
}

// Clear removes the credential and its file and signals "unauthenticated".
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.savedAt = time.Time{}
	err := os.Remove(s.path)
	s.mu.Unlock()

	s.notify(false)

	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called whenever the store flips between
// authenticated and unauthenticated. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(authenticated bool)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(authenticated bool) {
	s.mu.RLock()
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(authenticated)
	}
}

// persist writes the credential atomically (tmp file + rename) with owner-only
// permissions. Caller holds s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(persisted{Token: s.token, SavedAt: s.savedAt})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// DefaultPath returns the conventional location for the session file inside
// the user's config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "userdeck", "session.json"), nil
}
