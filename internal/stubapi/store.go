package stubapi

import (
	"sync"

	"github.com/google/uuid"

	"github.com/userdeck/userdeck/internal/common"
	"github.com/userdeck/userdeck/internal/console/models"
)

// Store is the in-memory backing table for the stub server: directory
// records plus operator accounts. Everything lives for the process only.
type Store struct {
	mu        sync.RWMutex
	users     []models.User
	operators map[string][]byte
}

func NewStore() *Store {
	return &Store{operators: make(map[string][]byte)}
}

// Seed loads a handful of directory records so a fresh server is not empty.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = []models.User{
		{ID: uuid.NewString(), Name: "Ann Lee", Email: "ann.lee@example.com", Department: "Engineering"},
		{ID: uuid.NewString(), Name: "Bo Chan", Email: "bo.chan@example.com", Department: "Operations"},
		{ID: uuid.NewString(), Name: "Cy Dee", Email: "cy.dee@example.com", Department: "R&D"},
	}
}

func (s *Store) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Create(p models.UserPayload) models.User {
	user := models.User{
		ID:         uuid.NewString(),
		Name:       p.Name,
		Email:      p.Email,
		Department: p.Department,
	}

	s.mu.Lock()
	s.users = append(s.users, user)
	s.mu.Unlock()
	return user
}

func (s *Store) Update(id string, p models.UserPayload) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i] = models.User{ID: id, Name: p.Name, Email: p.Email, Department: p.Department}
			return s.users[i], nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// AddOperator registers an operator account with an already-hashed password.
func (s *Store) AddOperator(email string, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.operators[email]; ok {
		return common.ErrorDuplicateID
	}
	s.operators[email] = passwordHash
	return nil
}

// OperatorHash returns the stored password hash for the given email.
func (s *Store) OperatorHash(email string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.operators[email]
	return hash, ok
}
