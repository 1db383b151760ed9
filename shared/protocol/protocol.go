// Package protocol defines the msgpack request/response envelopes spoken
// between the store client and the relay over a single websocket. Requests
// carry a sequence number so responses can be correlated; the relay answers
// every request exactly once, in any order.
package protocol

import (
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"

	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

// Op identifies a store operation.
type Op uint8

const (
	OpPing Op = iota + 1
	OpUpsertPlayer
	OpSelectPlayers
	OpDeletePlayers
	OpCountPlayers
	OpInsertProjectile
	OpSelectProjectiles
	OpDeleteProjectiles
)

func (o Op) String() string {
	switch o {
	case OpPing:
		return "ping"
	case OpUpsertPlayer:
		return "upsert-player"
	case OpSelectPlayers:
		return "select-players"
	case OpDeletePlayers:
		return "delete-players"
	case OpCountPlayers:
		return "count-players"
	case OpInsertProjectile:
		return "insert-projectile"
	case OpSelectProjectiles:
		return "select-projectiles"
	case OpDeleteProjectiles:
		return "delete-projectiles"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Request is sent client → relay. Only the fields relevant to Op are set.
type Request struct {
	Seq        uint64
	Op         Op
	Player     *rows.PlayerRow
	Projectile *rows.ProjectileRow
	Filter     rows.Filter
}

// Response is sent relay → client, echoing the request's Seq. A non-empty
// Err means the operation was rejected; transport-level failures never
// appear here (the connection just breaks).
type Response struct {
	Seq         uint64
	Err         string
	Count       int
	InsertedID  string
	Players     []rows.PlayerRow
	Projectiles []rows.ProjectileRow
}

var handle codec.MsgpackHandle

// Encode serializes v with the shared msgpack handle.
func Encode(v any) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &handle).Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return buf, nil
}

// Decode deserializes data into v.
func Decode(data []byte, v any) error {
	if err := codec.NewDecoderBytes(data, &handle).Decode(v); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}
