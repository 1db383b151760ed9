// Package network keeps every client's view of the shared world in sync
// through the relay store: it publishes the local ship, polls remote ships
// and cannonballs on background loops, and turns the resulting irregular
// snapshot streams into smooth per-frame display state.
package network

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/apmckelvey/boat-man-shooters/game"
	"github.com/apmckelvey/boat-man-shooters/netstore"
	"github.com/apmckelvey/boat-man-shooters/shared/netconfig"
	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// LocalState supplies the local ship's pose each push cycle.
type LocalState func() (x, y, rotation float64)

// Motion is a pose plus its rates of change. Target is recomputed from
// history every frame; State is only ever advanced and blended, never
// snapped, which is what keeps remote boats from teleporting.
type Motion struct {
	X, Y float64
	Rot  float64
	VX   float64
	VY   float64
	VRot float64
}

// RemoteShip is everything tracked for one remote player.
type RemoteShip struct {
	ID      string
	Name    string
	History *History
	State   Motion
	Target  Motion
}

// remoteShot tracks a replicated cannonball and the bookkeeping used to
// expire it.
type remoteShot struct {
	ball      *game.Cannonball
	ownerID   string
	createdAt float64
	lastSeen  float64
}

// Manager owns the remote ship and cannonball collections and the two
// replication loops that feed them. The collections are shared with the
// frame consumer (the Predictor and the renderer's accessors) under mu;
// everything network-facing stays on the background loops.
type Manager struct {
	store netstore.Store
	cfg   netconfig.Config
	id    string
	name  string
	local LocalState
	nowFn func() float64

	mu    sync.RWMutex
	ships map[string]*RemoteShip
	shots map[string]*remoteShot

	conn   connState
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewManager wires a manager to a store. local is read on the push cadence
// and must be safe to call from a background goroutine.
func NewManager(store netstore.Store, cfg netconfig.Config, profile game.Profile, local LocalState) *Manager {
	m := &Manager{
		store:  store,
		cfg:    cfg,
		id:     profile.PlayerID,
		name:   profile.PlayerName,
		local:  local,
		nowFn:  nowSeconds,
		ships:  make(map[string]*RemoteShip),
		shots:  make(map[string]*remoteShot),
		stopCh: make(chan struct{}),
	}
	m.conn.retryInterval = cfg.RetryIntervalMin
	return m
}

// Start connects (best effort) and launches the replication loops.
func (m *Manager) Start() {
	m.attemptConnect()

	m.wg.Add(2)
	go m.playerLoop()
	go m.projectileLoop()
	log.Printf("[network] replication started for %s (%s)", m.name, m.id)
}

// Stop halts the loops and best-effort deletes this player's rows so other
// clients drop the boat promptly instead of waiting for staleness. Cleanup
// failures are logged, never retried.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := m.store.DeletePlayers(ctx, rows.Filter{MatchID: m.id}); err != nil {
		log.Printf("[network] teardown: player row delete failed: %v", err)
	}
	if _, err := m.store.DeleteProjectiles(ctx, rows.Filter{MatchOwner: m.id}); err != nil {
		log.Printf("[network] teardown: projectile delete failed: %v", err)
	}
	_ = m.store.Close()
	log.Printf("[network] replication stopped")
}

// PlayerID returns the local player's stable id.
func (m *Manager) PlayerID() string {
	return m.id
}

// PlayerName returns the local display name.
func (m *Manager) PlayerName() string {
	return m.name
}

// Names returns a snapshot of remote id → display name, for nametags.
func (m *Manager) Names() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.ships))
	for id, ship := range m.ships {
		out[id] = ship.Name
	}
	return out
}

// Projectiles returns a point-in-time list of live remote cannonballs. The
// consumer advances each ball; the manager only creates and expires them.
func (m *Manager) Projectiles() []*game.Cannonball {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Cannonball, 0, len(m.shots))
	for _, shot := range m.shots {
		out = append(out, shot.ball)
	}
	return out
}

// CreateProjectile publishes a locally-fired cannonball. Returns the
// relay-assigned id, or "" when the insert could not happen — the local
// ball flies either way.
func (m *Manager) CreateProjectile(ball *game.Cannonball) (string, error) {
	if !m.conn.isConnected() {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	id, err := m.store.InsertProjectile(ctx, rows.ProjectileRow{
		OwnerID:   m.id,
		X:         ball.X,
		Y:         ball.Y,
		Rotation:  ball.Rotation,
		VelocityX: ball.VelocityX,
		VelocityY: ball.VelocityY,
		Side:      string(ball.Side),
		CreatedAt: m.nowFn(),
	})
	if err != nil {
		log.Printf("[network] cannonball insert failed: %v", err)
		return "", err
	}
	return id, nil
}

// sleep waits for d or until Stop, whichever comes first. Returns false on
// stop.
func (m *Manager) sleep(d time.Duration) bool {
	select {
	case <-m.stopCh:
		return false
	case <-time.After(d):
		return true
	}
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
