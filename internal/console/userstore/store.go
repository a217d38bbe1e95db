// Package userstore is the authoritative client-side cache of directory
// records.
//
// Every mutation produces a fresh snapshot slice; the previous one is never
// touched, so consumers holding an old snapshot can diff by reference and
// read it without locking. The store is only ever fed confirmed server
// responses; it is never mutated speculatively ahead of confirmation.
package userstore

import (
	"sync"

	"github.com/userdeck/userdeck/internal/common"
	"github.com/userdeck/userdeck/internal/console/models"
)

// Store holds the current collection snapshot and notifies subscribers when
// it is replaced. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	users   []models.User
	subs    map[int]func(snapshot []models.User)
	nextSub int
}

func New() *Store {
	return &Store{
		users: []models.User{},
		subs:  make(map[int]func([]models.User)),
	}
}

// Snapshot returns the current snapshot. The returned slice is immutable by
// convention: the store never writes to it again.
func (s *Store) Snapshot() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

// Len reports the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Get returns the record with the given id, or common.ErrorNotFound.
func (s *Store) Get(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

// ReplaceAll resets the snapshot to exactly the given sequence, preserving
// server-supplied order. The input is copied so the caller cannot alias the
// new snapshot.
func (s *Store) ReplaceAll(users []models.User) {
	next := make([]models.User, len(users))
	copy(next, users)

	s.mu.Lock()
	s.users = next
	s.mu.Unlock()

	s.notify(next)
}

// Insert appends one record. A record without an id is rejected with
// common.ErrorEmptyID; a colliding id is rejected with
// common.ErrorDuplicateID rather than overwriting, so a buggy server
// response cannot silently clobber a cached record.
func (s *Store) Insert(user models.User) error {
	if user.ID == "" {
		return common.ErrorEmptyID
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.ID == user.ID {
			s.mu.Unlock()
			return common.ErrorDuplicateID
		}
	}
	next := make([]models.User, len(s.users)+1)
	copy(next, s.users)
	next[len(next)-1] = user
	s.users = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// UpdateByID replaces the record whose id matches, keeping its position.
// When no record matches this is a no-op: "not found" signalling belongs to
// the API layer, not the cache.
func (s *Store) UpdateByID(user models.User) {
	s.mu.Lock()
	idx := -1
	for i, u := range s.users {
		if u.ID == user.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := make([]models.User, len(s.users))
	copy(next, s.users)
	next[idx] = user
	s.users = next
	s.mu.Unlock()

	s.notify(next)
}

// DeleteByID removes the record with the given id; no-op when absent.
func (s *Store) DeleteByID(id string) {
	s.mu.Lock()
	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	next := make([]models.User, 0, len(s.users)-1)
	next = append(next, s.users[:idx]...)
	next = append(next, s.users[idx+1:]...)
	s.users = next
	s.mu.Unlock()

	s.notify(next)
}

// Subscribe registers fn to receive every new snapshot. The returned func
// unsubscribes.
func (s *Store) Subscribe(fn func(snapshot []models.User)) func() {
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

func (s *Store) notify(snapshot []models.User) {
	s.mu.RLock()
	fns := make([]func([]models.User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
