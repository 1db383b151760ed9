package network

import (
	"context"
	"log"

	"github.com/apmckelvey/boat-man-shooters/game"
	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// projectileLoop replicates cannonballs fired by other clients. It runs on
// a faster cadence than the player loop because projectiles are short-lived
// and spend most of their lifetime in flight. Reconnection is the player
// loop's job; this loop just idles while offline.
func (m *Manager) projectileLoop() {
	defer m.wg.Done()

	var lastFetch float64
	for {
		select {
		case <-m.stopCh:
			return
		default:
		}

		if !m.conn.isConnected() {
			if !m.sleep(offlineIdle) {
				return
			}
			continue
		}

		now := m.nowFn()
		idle := loopIdle

		if now-lastFetch >= m.cfg.ProjectileFetchInterval {
			if err := m.pullProjectiles(now); err != nil {
				log.Printf("[network] projectile pull failed: %v", err)
				m.conn.lose()
				idle = errorBackoff
			} else {
				lastFetch = now
			}
		}

		m.expireProjectiles(now)

		if !m.sleep(idle) {
			return
		}
	}
}

func (m *Manager) pullProjectiles(now float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	remote, err := m.store.SelectProjectiles(ctx, rows.Filter{
		CreatedAfter: now - m.cfg.ProjectileWindow,
		ExcludeOwner: m.id,
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range remote {
		if err := row.Validate(); err != nil {
			log.Printf("[network] skipping projectile row: %v", err)
			continue
		}
		if row.ID == "" || row.OwnerID == m.id {
			continue
		}

		if shot, ok := m.shots[row.ID]; ok {
			shot.lastSeen = now
			continue
		}

		age := now - row.CreatedAt
		if age > m.cfg.ProjectileLifetime {
			continue // already dead in flight; never instantiate zombies
		}

		ball := game.NewRemoteCannonball(row.X, row.Y, row.Rotation, game.Side(row.Side),
			row.VelocityX, row.VelocityY)
		ball.SetAge(age)

		m.shots[row.ID] = &remoteShot{
			ball:      ball,
			ownerID:   row.OwnerID,
			createdAt: row.CreatedAt,
			lastSeen:  now,
		}
		log.Printf("[network] cannonball from %s (age %.2fs)", row.OwnerID, age)
	}
	return nil
}

// expireProjectiles drops shots by age — correct even when polling stalls —
// and by last-seen, which covers rows deleted on the relay as well as rows
// that simply slid out of the poll window.
func (m *Manager) expireProjectiles(now float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, shot := range m.shots {
		if now-shot.createdAt > m.cfg.ProjectileLifetime ||
			now-shot.lastSeen > m.cfg.ProjectileLastSeen {
			delete(m.shots, id)
		}
	}
}
