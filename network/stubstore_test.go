package network

import (
	"context"
	"fmt"

	"github.com/apmckelvey/boat-man-shooters/game"
	"github.com/apmckelvey/boat-man-shooters/netstore"
	"github.com/apmckelvey/boat-man-shooters/shared/netconfig"
	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// stubStore lets tests script store behavior per call. Nil funcs succeed
// with zero values.
type stubStore struct {
	upsertPlayer      func(rows.PlayerRow) error
	selectPlayers     func(rows.Filter) ([]rows.PlayerRow, error)
	deletePlayers     func(rows.Filter) (int, error)
	playerCount       func() (int, error)
	insertProjectile  func(rows.ProjectileRow) (string, error)
	selectProjectiles func(rows.Filter) ([]rows.ProjectileRow, error)
	deleteProjectiles func(rows.Filter) (int, error)
}

var _ netstore.Store = (*stubStore)(nil)

func (s *stubStore) UpsertPlayer(_ context.Context, row rows.PlayerRow) error {
	if s.upsertPlayer == nil {
		return nil
	}
	return s.upsertPlayer(row)
}

func (s *stubStore) SelectPlayers(_ context.Context, f rows.Filter) ([]rows.PlayerRow, error) {
	if s.selectPlayers == nil {
		return nil, nil
	}
	return s.selectPlayers(f)
}

func (s *stubStore) DeletePlayers(_ context.Context, f rows.Filter) (int, error) {
	if s.deletePlayers == nil {
		return 0, nil
	}
	return s.deletePlayers(f)
}

func (s *stubStore) PlayerCount(_ context.Context) (int, error) {
	if s.playerCount == nil {
		return 0, nil
	}
	return s.playerCount()
}

func (s *stubStore) InsertProjectile(_ context.Context, row rows.ProjectileRow) (string, error) {
	if s.insertProjectile == nil {
		return "stub-id", nil
	}
	return s.insertProjectile(row)
}

func (s *stubStore) SelectProjectiles(_ context.Context, f rows.Filter) ([]rows.ProjectileRow, error) {
	if s.selectProjectiles == nil {
		return nil, nil
	}
	return s.selectProjectiles(f)
}

func (s *stubStore) DeleteProjectiles(_ context.Context, f rows.Filter) (int, error) {
	if s.deleteProjectiles == nil {
		return 0, nil
	}
	return s.deleteProjectiles(f)
}

func (s *stubStore) Close() error { return nil }

var errNetDown = fmt.Errorf("probe: %w", netstore.ErrTransport)

// newTestManager builds an unstarted manager on a scripted clock. The local
// ship sits at the world center.
func newTestManager(store netstore.Store, now *float64) *Manager {
	m := NewManager(store, netconfig.DefaultConfig(),
		game.Profile{PlayerID: "local", PlayerName: "Player_local"},
		func() (float64, float64, float64) { return 8, 8, 0 })
	m.nowFn = func() float64 { return *now }
	return m
}
