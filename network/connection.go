package network

import (
	"context"
	"log"
	"math"
	"sync"
	"time"
)

const backoffExponentCap = 8

// connState tracks store connectivity and reconnection backoff. Written by
// the replication loops, read by anyone through Manager.Connected.
type connState struct {
	mu            sync.Mutex
	connected     bool
	lastAttempt   float64
	retryInterval float64
	failures      uint32
}

func (c *connState) isConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// lose flips the flag after a transport error mid-loop. It deliberately
// leaves the retry interval alone; the next attemptConnect re-evaluates
// timing.
func (c *connState) lose() {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

// due reports whether enough time has passed for another attempt, and if so
// stamps it.
func (c *connState) due(now float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now-c.lastAttempt < c.retryInterval {
		return false
	}
	c.lastAttempt = now
	return true
}

func (c *connState) succeed(min float64) {
	c.mu.Lock()
	c.connected = true
	c.failures = 0
	c.retryInterval = min
	c.mu.Unlock()
}

func (c *connState) fail(min, max float64) (interval float64, failures uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.failures++
	exp := c.failures
	if exp > backoffExponentCap {
		exp = backoffExponentCap
	}
	c.retryInterval = math.Min(max, min*math.Pow(1.5, float64(exp)))
	return c.retryInterval, c.failures
}

// attemptConnect probes the store if the backoff window has elapsed.
// Returns true when the probe succeeded.
func (m *Manager) attemptConnect() bool {
	now := m.nowFn()
	if !m.conn.due(now) {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.store.PlayerCount(ctx); err != nil {
		interval, failures := m.conn.fail(m.cfg.RetryIntervalMin, m.cfg.RetryIntervalMax)
		log.Printf("[network] connection attempt %d failed: %v (retry in %.1fs)", failures, err, interval)
		return false
	}

	m.conn.succeed(m.cfg.RetryIntervalMin)
	log.Printf("[network] connected to relay")
	return true
}

// Connected reports whether the replication loops consider the store
// reachable. The renderer watches this for its reconnecting overlay.
func (m *Manager) Connected() bool {
	return m.conn.isConnected()
}
