// Package memstore keeps registrations in process memory, in insertion order.
// It backs STORE_BACKEND=memory and the service tests.
package memstore

import (
	"context"
	"sync"

	"openday/internal/models"
)

type Store struct {
	mu   sync.Mutex
	rows []models.Registration
}

func New(seed ...models.Registration) *Store {
	s := &Store{}
	s.rows = append(s.rows, seed...)
	return s
}

func (s *Store) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Registration, len(s.rows))
	for i, r := range s.rows {
		r.Row = i + 2 // mirror sheet numbering, header on row 1
		out[i] = r
	}
	return out, nil
}

func (s *Store) AppendRegistration(ctx context.Context, r models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Row = 0
	s.rows = append(s.rows, r)
	return nil
}

func (s *Store) ReplaceRegistration(ctx context.Context, email string, r models.Registration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(email)
	if i < 0 {
		return false, nil
	}
	r.Row = 0
	s.rows[i] = r
	return true, nil
}

func (s *Store) DeleteRegistration(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(email)
	if i < 0 {
		return false, nil
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return true, nil
}

// Len is the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Store) find(email string) int {
	key := models.NormalizeEmail(email)
	for i, r := range s.rows {
		if models.NormalizeEmail(r.Email) == key {
			return i
		}
	}
	return -1
}
