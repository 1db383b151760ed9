// Package relay implements the shared row store the game clients replicate
// through: two in-memory tables behind a websocket request/response
// protocol, with periodic expiry of rows whose writers went away.
package relay

import (
	"context"
	"log"
	"time"

	"github.com/apmckelvey/boat-man-shooters/netstore"
	"github.com/apmckelvey/boat-man-shooters/shared/protocol"
	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// Row retention. Clients stop reading player rows after 10s and projectile
// rows after 1.5s, so these only bound memory for writers that never sent
// their teardown delete.
const (
	playerRowTTL     = 60 * time.Second
	projectileRowTTL = 30 * time.Second
	sweepInterval    = 30 * time.Second
)

// Tables owns the relay's row store and its expiry sweep.
type Tables struct {
	store  *netstore.MemStore
	nowFn  func() float64
	stopCh chan struct{}
}

func NewTables() *Tables {
	t := &Tables{
		store:  netstore.NewMemStore(),
		nowFn:  func() float64 { return float64(time.Now().UnixNano()) / 1e9 },
		stopCh: make(chan struct{}),
	}
	go t.sweepLoop()
	return t
}

func (t *Tables) Stop() {
	close(t.stopCh)
	_ = t.store.Close()
}

// Apply executes one request against the tables and builds its response.
func (t *Tables) Apply(req protocol.Request) protocol.Response {
	ctx := context.Background()
	resp := protocol.Response{Seq: req.Seq}

	var err error
	switch req.Op {
	case protocol.OpPing:
		// Seq echo is the whole answer.
	case protocol.OpUpsertPlayer:
		if req.Player == nil {
			resp.Err = "missing player row"
			return resp
		}
		err = t.store.UpsertPlayer(ctx, *req.Player)
	case protocol.OpSelectPlayers:
		resp.Players, err = t.store.SelectPlayers(ctx, req.Filter)
	case protocol.OpDeletePlayers:
		resp.Count, err = t.store.DeletePlayers(ctx, req.Filter)
	case protocol.OpCountPlayers:
		resp.Count, err = t.store.PlayerCount(ctx)
	case protocol.OpInsertProjectile:
		if req.Projectile == nil {
			resp.Err = "missing projectile row"
			return resp
		}
		resp.InsertedID, err = t.store.InsertProjectile(ctx, *req.Projectile)
	case protocol.OpSelectProjectiles:
		resp.Projectiles, err = t.store.SelectProjectiles(ctx, req.Filter)
	case protocol.OpDeleteProjectiles:
		resp.Count, err = t.store.DeleteProjectiles(ctx, req.Filter)
	default:
		resp.Err = "unknown op"
		return resp
	}

	if err != nil {
		resp.Err = err.Error()
	}
	return resp
}

// Counts returns the current table sizes for the stats endpoint.
func (t *Tables) Counts() (players, projectiles int) {
	ctx := context.Background()
	ps, _ := t.store.SelectPlayers(ctx, rows.Filter{})
	cs, _ := t.store.SelectProjectiles(ctx, rows.Filter{})
	return len(ps), len(cs)
}

func (t *Tables) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.sweep()
		}
	}
}

func (t *Tables) sweep() {
	ctx := context.Background()
	now := t.nowFn()

	np, err := t.store.DeletePlayers(ctx, rows.Filter{UpdatedBefore: now - playerRowTTL.Seconds()})
	if err != nil {
		return
	}
	nc, err := t.store.DeleteProjectiles(ctx, rows.Filter{CreatedBefore: now - projectileRowTTL.Seconds()})
	if err != nil {
		return
	}
	if np > 0 || nc > 0 {
		log.Printf("[relay] expired %d player rows, %d projectile rows", np, nc)
	}
}
