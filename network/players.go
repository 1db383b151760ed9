package network

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

const (
	loopIdle     = 10 * time.Millisecond
	offlineIdle  = 100 * time.Millisecond
	errorBackoff = 500 * time.Millisecond
	callTimeout  = 5 * time.Second
)

// playerLoop pushes local state and pulls remote ship rows on their own
// cadences for the lifetime of the session. Transport errors flip the
// connection flag and back off briefly; the loop itself never dies.
func (m *Manager) playerLoop() {
	defer m.wg.Done()

	var lastSend, lastFetch float64
	for {
		select {
		case <-m.stopCh:
			return
		default:
		}

		if !m.conn.isConnected() {
			m.attemptConnect()
			if !m.sleep(offlineIdle) {
				return
			}
			continue
		}

		now := m.nowFn()
		failed := false

		if now-lastSend >= m.cfg.SendInterval {
			if err := m.pushLocal(now); err != nil {
				log.Printf("[network] push failed: %v", err)
				m.conn.lose()
				failed = true
			} else {
				lastSend = now
			}
		}

		if !failed && now-lastFetch >= m.cfg.FetchInterval {
			if err := m.pullPlayers(now); err != nil {
				log.Printf("[network] pull failed: %v", err)
				m.conn.lose()
				failed = true
			} else {
				lastFetch = now
			}
		}

		idle := loopIdle
		if failed {
			idle = errorBackoff
		}
		if !m.sleep(idle) {
			return
		}
	}
}

func (m *Manager) pushLocal(now float64) error {
	x, y, rot := m.local()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	return m.store.UpsertPlayer(ctx, rows.PlayerRow{
		ID:        m.id,
		Name:      m.name,
		X:         x,
		Y:         y,
		Rotation:  rot,
		UpdatedAt: now,
	})
}

func (m *Manager) pullPlayers(now float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	remote, err := m.store.SelectPlayers(ctx, rows.Filter{
		UpdatedAfter: now - m.cfg.PlayerRowWindow,
		ExcludeID:    m.id,
	})
	if err != nil {
		return err
	}

	localX, localY, _ := m.local()
	for _, row := range remote {
		if err := row.Validate(); err != nil {
			log.Printf("[network] skipping row: %v", err)
			continue
		}
		if row.ID == m.id {
			continue
		}
		m.ingestPlayer(row, localX, localY)
	}
	return nil
}

// ingestPlayer feeds one pulled row into the ship collection. Rows outside
// the visibility radius are accepted but ignored; if the ship later
// re-enters the radius it starts over with a fresh record.
func (m *Manager) ingestPlayer(row rows.PlayerRow, localX, localY float64) {
	if math.Hypot(row.X-localX, row.Y-localY) > m.cfg.VisibleRadius {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ship, ok := m.ships[row.ID]
	if !ok {
		seed := Motion{X: row.X, Y: row.Y, Rot: row.Rotation}
		ship = &RemoteShip{
			ID:      row.ID,
			Name:    row.Name,
			History: NewHistory(m.cfg.MaxHistory),
			State:   seed,
			Target:  seed,
		}
		m.ships[row.ID] = ship
		log.Printf("[network] tracking %s (%s)", ship.Name, ship.ID)
	}

	ship.History.Append(Snapshot{X: row.X, Y: row.Y, Rot: row.Rotation, TS: row.UpdatedAt})
}
