// Package rows defines the row schemas stored in the relay and the filter
// expressions the store contract understands. Shared between client and
// relay, so it must have no dependency on game or network packages.
package rows

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadRow marks a row that is missing required fields or carries
// non-finite numbers. Callers skip such rows instead of failing a poll.
var ErrBadRow = errors.New("malformed row")

// PlayerRow is one player's published state, keyed by ID (last writer wins).
type PlayerRow struct {
	ID        string
	Name      string
	X         float64
	Y         float64
	Rotation  float64
	UpdatedAt float64 // seconds
}

// ProjectileRow is one fired projectile. Rows are insert-only; ID is
// assigned by the relay.
type ProjectileRow struct {
	ID        string
	OwnerID   string
	X         float64
	Y         float64
	Rotation  float64
	VelocityX float64
	VelocityY float64
	Side      string // "left" or "right"
	CreatedAt float64 // seconds
}

// Filter narrows a select or delete. Zero values mean "no constraint".
type Filter struct {
	MatchID       string
	ExcludeID     string
	MatchOwner    string
	ExcludeOwner  string
	UpdatedAfter  float64
	UpdatedBefore float64
	CreatedAfter  float64
	CreatedBefore float64
}

func (r PlayerRow) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: player row has empty id", ErrBadRow)
	}
	if !finite(r.X, r.Y, r.Rotation, r.UpdatedAt) {
		return fmt.Errorf("%w: player row %q has non-finite fields", ErrBadRow, r.ID)
	}
	return nil
}

func (r ProjectileRow) Validate() error {
	if r.OwnerID == "" {
		return fmt.Errorf("%w: projectile row has empty owner", ErrBadRow)
	}
	if !finite(r.X, r.Y, r.Rotation, r.VelocityX, r.VelocityY, r.CreatedAt) {
		return fmt.Errorf("%w: projectile row %q has non-finite fields", ErrBadRow, r.ID)
	}
	return nil
}

// MatchPlayer reports whether the row passes the filter.
func (f Filter) MatchPlayer(r PlayerRow) bool {
	if f.MatchID != "" && r.ID != f.MatchID {
		return false
	}
	if f.ExcludeID != "" && r.ID == f.ExcludeID {
		return false
	}
	if f.UpdatedAfter != 0 && r.UpdatedAt <= f.UpdatedAfter {
		return false
	}
	if f.UpdatedBefore != 0 && r.UpdatedAt >= f.UpdatedBefore {
		return false
	}
	return true
}

// MatchProjectile reports whether the row passes the filter.
func (f Filter) MatchProjectile(r ProjectileRow) bool {
	if f.MatchID != "" && r.ID != f.MatchID {
		return false
	}
	if f.ExcludeID != "" && r.ID == f.ExcludeID {
		return false
	}
	if f.MatchOwner != "" && r.OwnerID != f.MatchOwner {
		return false
	}
	if f.ExcludeOwner != "" && r.OwnerID == f.ExcludeOwner {
		return false
	}
	if f.CreatedAfter != 0 && r.CreatedAt <= f.CreatedAfter {
		return false
	}
	if f.CreatedBefore != 0 && r.CreatedAt >= f.CreatedBefore {
		return false
	}
	return true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
