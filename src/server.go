package game

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"star-race-server/config"
)

// Option customizes a GameServer.
type Option func(*GameServer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *GameServer) { s.clock = c }
}

// WithRand replaces the random source used for spawn positions and colors.
func WithRand(r *rand.Rand) Option {
	return func(s *GameServer) { s.rng = r }
}

// WithSendBuffer sets the per-connection outbound queue length.
func WithSendBuffer(n int) Option {
	return func(s *GameServer) {
		if n > 0 {
			s.sendBuffer = n
		}
	}
}

// WithAllowedOrigins restricts which browser origins may open a WebSocket.
func WithAllowedOrigins(origins []string) Option {
	return func(s *GameServer) {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return originAllowed(origins, r.Header.Get("Origin"))
		}
	}
}

// NewGameServer creates a game server with one star already on the field.
func NewGameServer(cfg config.Game, opts ...Option) *GameServer {
	s := &GameServer{
		cfg:        cfg,
		clock:      systemClock{},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		players:    make(map[string]*Player),
		scores:     make(map[string]int),
		sendBuffer: 256,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{MsgpackSubprotocol, JSONSubprotocol},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.clock.Now()
	s.lastStarTime = s.startedAt
	s.stars = append(s.stars, s.newStar())
	return s
}

// Run drives Tick at the configured interval until ctx is cancelled. A tick in
// progress always completes; afterwards every session is closed.
func (s *GameServer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.running.Store(true)
	log.Printf("Game loop started (%v per tick).", s.cfg.TickInterval)
	for {
		select {
		case <-ctx.Done():
			s.running.Store(false)
			s.Shutdown()
			log.Printf("Game loop stopped after %d ticks.", s.ticks.Load())
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the world by one step and broadcasts the result.
func (s *GameServer) Tick() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()

	// Phase 1: physics
	for _, id := range s.order {
		stepPhysics(s.players[id], s.cfg)
	}

	// Phase 2: stars
	s.collectStars(now)
	s.spawnStars(now)

	// Phase 3: copy out what the broadcast needs, then release the lock
	snapshot := s.snapshotLocked()
	targets := s.sessionsLocked()
	s.mu.Unlock()

	s.ticks.Add(1)
	s.broadcast(UpdateMessage{Type: MsgUpdate, Snapshot: snapshot}, targets)
}

// Shutdown stops accepting joins and closes every session. Safe to call twice.
func (s *GameServer) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	targets := s.sessionsLocked()
	s.mu.Unlock()

	for _, t := range targets {
		_ = t.conn.Close()
	}
	log.Printf("Closed %d sessions.", len(targets))
}

// Running reports whether the tick loop is active.
func (s *GameServer) Running() bool {
	return s.running.Load()
}

// Snapshot returns a copy of the current world state.
func (s *GameServer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Stats returns the current server counters.
func (s *GameServer) Stats() Stats {
	s.mu.Lock()
	players, stars := len(s.players), len(s.stars)
	s.mu.Unlock()

	return Stats{
		Running:           s.running.Load(),
		Uptime:            s.clock.Now().Sub(s.startedAt),
		Ticks:             s.ticks.Load(),
		Players:           players,
		Stars:             stars,
		DroppedFrames:     s.droppedFrames.Load(),
		RejectedInputs:    s.rejectedInputs.Load(),
		MalformedMessages: s.malformedMessages.Load(),
	}
}

// Config returns the tuning the server runs with.
func (s *GameServer) Config() config.Game {
	return s.cfg
}
