// Package netconfig holds the tuning knobs for state replication and
// interpolation. It is shared between client and relay and must have zero
// dependencies on any graphics library so headless binaries stay headless.
package netconfig

// Table names used by the relay store.
const (
	TablePlayers     = "players"
	TableProjectiles = "projectiles"
)

// Config carries every recognized replication option. Intervals and cutoffs
// are in seconds; distances in world units.
type Config struct {
	// Push/poll cadences.
	SendInterval            float64 // local state upsert cadence
	FetchInterval           float64 // player poll cadence
	ProjectileFetchInterval float64 // projectile poll cadence

	// Poll windows.
	PlayerRowWindow  float64 // only rows updated within this window are pulled
	ProjectileWindow float64 // projectile discovery window (network latency buffer)

	// Interest and interpolation.
	VisibleRadius float64 // player rows beyond this distance are ignored
	InterpDelay   float64 // render-time lag traded for smoothness
	MaxHistory    int     // snapshot history cap per remote ship

	// Correction blending. These are per-frame multiplicative blend factors,
	// not dt-scaled; extrapolation distance is the only time-scaled term.
	PositionCorrection float64
	RotationCorrection float64
	VelocityCorrection float64
	MaxPositionError   float64 // beyond this, correction strength ramps up
	MaxExtrapolation   float64 // extrapolation clamp when data lags

	// Staleness.
	StaleCutoff        float64 // remote ships removed after no update for this long
	ProjectileLifetime float64 // projectiles expire by age
	ProjectileLastSeen float64 // ...or after falling out of poll results

	// Connection backoff.
	RetryIntervalMin float64
	RetryIntervalMax float64
}

// DefaultConfig returns the tuned values the game ships with.
func DefaultConfig() Config {
	return Config{
		SendInterval:            0.1,
		FetchInterval:           0.2,
		ProjectileFetchInterval: 0.1,

		PlayerRowWindow:  10.0,
		ProjectileWindow: 1.5,

		VisibleRadius: 10.0,
		InterpDelay:   0.1,
		MaxHistory:    20,

		PositionCorrection: 0.12,
		RotationCorrection: 0.15,
		VelocityCorrection: 0.1,
		MaxPositionError:   2.0,
		MaxExtrapolation:   0.4,

		StaleCutoff:        12.0,
		ProjectileLifetime: 5.0,
		ProjectileLastSeen: 7.0,

		RetryIntervalMin: 2.0,
		RetryIntervalMax: 30.0,
	}
}
