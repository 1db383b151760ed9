package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/apmckelvey/boat-man-shooters/shared/protocol"
)

const (
	readLimit    = 1 << 20
	writeTimeout = 10 * time.Second
)

// Server exposes the tables over /ws plus JSON health and stats endpoints.
type Server struct {
	tables *Tables
	hs     *http.Server
}

func NewServer(addr string) *Server {
	s := &Server{tables: NewTables()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("/ws", s.handleWS)

	s.hs = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler returns the HTTP handler, for embedding in tests.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	log.Printf("[relay] listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and halts the expiry sweep.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.hs.Shutdown(ctx)
	s.tables.Stop()
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	players, projectiles := s.tables.Counts()

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]int{
		"players":     players,
		"projectiles": projectiles,
	})
	if err != nil {
		log.Printf("[relay] stats encode error: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[relay] accept failed: %v", err)
		return
	}
	conn.SetReadLimit(readLimit)
	defer conn.CloseNow()

	log.Printf("[relay] client connected from %s", r.RemoteAddr)
	defer log.Printf("[relay] client from %s gone", r.RemoteAddr)

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageBinary {
			conn.Close(websocket.StatusUnsupportedData, "binary frames only")
			return
		}

		var req protocol.Request
		if err := protocol.Decode(data, &req); err != nil {
			log.Printf("[relay] bad frame from %s: %v", r.RemoteAddr, err)
			conn.Close(websocket.StatusInvalidFramePayloadData, "bad request frame")
			return
		}

		resp := s.tables.Apply(req)

		payload, err := protocol.Encode(&resp)
		if err != nil {
			log.Printf("[relay] encode response: %v", err)
			return
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err = conn.Write(wctx, websocket.MessageBinary, payload)
		cancel()
		if err != nil {
			return
		}
	}
}
