package netstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"

	"github.com/apmckelvey/boat-man-shooters/shared/protocol"
	"github.com/apmckelvey/boat-man-shooters/shared/rows"
)

const wsReadLimit = 1 << 20

// WsStore talks the relay's msgpack protocol over a single websocket.
// Requests from any goroutine are multiplexed onto the connection and
// correlated back by sequence number. Once the connection breaks, every
// method fails with ErrTransport until a new store is dialed; reconnection
// policy belongs to the connection state machine, not here.
type WsStore struct {
	conn *websocket.Conn
	seq  atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan protocol.Response
	err     error // sticky; set once the connection is unusable
	done    chan struct{}
}

// DialWs connects to a relay's /ws endpoint. URLs may use http(s) or ws(s)
// schemes.
func DialWs(ctx context.Context, url string) (*WsStore, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w: %w", ErrTransport, err)
	}
	conn.SetReadLimit(wsReadLimit)

	s := &WsStore{
		conn:    conn,
		pending: make(map[uint64]chan protocol.Response),
		done:    make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *WsStore) readLoop() {
	for {
		_, data, err := s.conn.Read(context.Background())
		if err != nil {
			s.fail(fmt.Errorf("relay read: %w: %w", ErrTransport, err))
			return
		}
		var resp protocol.Response
		if err := protocol.Decode(data, &resp); err != nil {
			s.fail(fmt.Errorf("relay frame: %w: %w", ErrTransport, err))
			return
		}
		s.mu.Lock()
		ch, ok := s.pending[resp.Seq]
		if ok {
			delete(s.pending, resp.Seq)
		}
		s.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

// fail poisons the store and wakes every waiter.
func (s *WsStore) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
		close(s.done)
	}
	s.pending = make(map[uint64]chan protocol.Response)
	s.mu.Unlock()
	_ = s.conn.CloseNow()
}

func (s *WsStore) roundTrip(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	req.Seq = s.seq.Add(1)

	payload, err := protocol.Encode(&req)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("%s: %w", req.Op, err)
	}

	ch := make(chan protocol.Response, 1)
	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return protocol.Response{}, err
	}
	s.pending[req.Seq] = ch
	s.mu.Unlock()

	if err := s.conn.Write(ctx, websocket.MessageBinary, payload); err != nil {
		s.mu.Lock()
		delete(s.pending, req.Seq)
		s.mu.Unlock()
		return protocol.Response{}, fmt.Errorf("%s: %w: %w", req.Op, ErrTransport, err)
	}

	select {
	case resp := <-ch:
		if resp.Err != "" {
			return protocol.Response{}, fmt.Errorf("%s rejected: %w: %s", req.Op, ErrBadRow, resp.Err)
		}
		return resp, nil
	case <-s.done:
		return protocol.Response{}, s.err
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.pending, req.Seq)
		s.mu.Unlock()
		return protocol.Response{}, fmt.Errorf("%s: %w: %w", req.Op, ErrTransport, ctx.Err())
	}
}

func (s *WsStore) UpsertPlayer(ctx context.Context, row rows.PlayerRow) error {
	_, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpUpsertPlayer, Player: &row})
	return err
}

func (s *WsStore) SelectPlayers(ctx context.Context, f rows.Filter) ([]rows.PlayerRow, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpSelectPlayers, Filter: f})
	if err != nil {
		return nil, err
	}
	return resp.Players, nil
}

func (s *WsStore) DeletePlayers(ctx context.Context, f rows.Filter) (int, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpDeletePlayers, Filter: f})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *WsStore) PlayerCount(ctx context.Context) (int, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpCountPlayers})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *WsStore) InsertProjectile(ctx context.Context, row rows.ProjectileRow) (string, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpInsertProjectile, Projectile: &row})
	if err != nil {
		return "", err
	}
	return resp.InsertedID, nil
}

func (s *WsStore) SelectProjectiles(ctx context.Context, f rows.Filter) ([]rows.ProjectileRow, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpSelectProjectiles, Filter: f})
	if err != nil {
		return nil, err
	}
	return resp.Projectiles, nil
}

func (s *WsStore) DeleteProjectiles(ctx context.Context, f rows.Filter) (int, error) {
	resp, err := s.roundTrip(ctx, protocol.Request{Op: protocol.OpDeleteProjectiles, Filter: f})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *WsStore) Close() error {
	s.fail(ErrClosed)
	return nil
}
