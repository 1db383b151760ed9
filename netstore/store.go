// Package netstore abstracts the remote row store the game replicates
// through. The core only depends on this contract; the concrete backend is
// either the in-memory store (relay side, tests) or the websocket client
// (game side).
package netstore

import (
	"context"
	"errors"

	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// Error kinds. Transport failures are recoverable and drive the connection
// state machine; bad rows are skipped; a closed store ends the session.
var (
	ErrTransport = errors.New("transport failure")
	ErrBadRow    = rows.ErrBadRow
	ErrClosed    = errors.New("store closed")
)

// Store is the backing store contract: upsert, filtered select, delete, and
// a cheap count used as a connection probe. Implementations must be safe
// for concurrent use; the player and projectile loops share one Store.
type Store interface {
	UpsertPlayer(ctx context.Context, row rows.PlayerRow) error
	SelectPlayers(ctx context.Context, f rows.Filter) ([]rows.PlayerRow, error)
	DeletePlayers(ctx context.Context, f rows.Filter) (int, error)
	PlayerCount(ctx context.Context) (int, error)

	InsertProjectile(ctx context.Context, row rows.ProjectileRow) (string, error)
	SelectProjectiles(ctx context.Context, f rows.Filter) ([]rows.ProjectileRow, error)
	DeleteProjectiles(ctx context.Context, f rows.Filter) (int, error)

	Close() error
}
