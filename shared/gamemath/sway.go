package gamemath

import (
	"hash/fnv"
	"math"
)

// SwayParams derives a cosmetic bobbing phase and amplitude from an entity
// id. The mapping is a pure function of the id, so every client renders the
// same boat with the same sway regardless of when it learned about it.
// Phase lands in [0, 2π), amplitude in [0.6, 1.4).
func SwayParams(id string) (phase, amp float64) {
	h := fnv.New32a()
	h.Write([]byte(id))
	v := h.Sum32()

	phase = float64(v%1024) / 1024 * 2 * math.Pi
	amp = 0.6 + float64((v/1024)%256)/256*0.8
	return phase, amp
}
