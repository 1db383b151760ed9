package netstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// MemStore is an in-memory Store. It backs the relay's tables and stands in
// for the remote store in tests.
type MemStore struct {
	mu          sync.RWMutex
	players     map[string]rows.PlayerRow
	projectiles map[string]rows.ProjectileRow
	closed      bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		players:     make(map[string]rows.PlayerRow),
		projectiles: make(map[string]rows.ProjectileRow),
	}
}

func (s *MemStore) UpsertPlayer(_ context.Context, row rows.PlayerRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.players[row.ID] = row
	return nil
}

func (s *MemStore) SelectPlayers(_ context.Context, f rows.Filter) ([]rows.PlayerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	var out []rows.PlayerRow
	for _, row := range s.players {
		if f.MatchPlayer(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *MemStore) DeletePlayers(_ context.Context, f rows.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	n := 0
	for id, row := range s.players {
		if f.MatchPlayer(row) {
			delete(s.players, id)
			n++
		}
	}
	return n, nil
}

func (s *MemStore) PlayerCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.players), nil
}

func (s *MemStore) InsertProjectile(_ context.Context, row rows.ProjectileRow) (string, error) {
	if err := row.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if row.ID == "" {
		row.ID = newRowID()
	}
	s.projectiles[row.ID] = row
	return row.ID, nil
}

func (s *MemStore) SelectProjectiles(_ context.Context, f rows.Filter) ([]rows.ProjectileRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	var out []rows.ProjectileRow
	for _, row := range s.projectiles {
		if f.MatchProjectile(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *MemStore) DeleteProjectiles(_ context.Context, f rows.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	n := 0
	for id, row := range s.projectiles {
		if f.MatchProjectile(row) {
			delete(s.projectiles, id)
			n++
		}
	}
	return n, nil
}

func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func newRowID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}
