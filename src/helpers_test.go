package game

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"star-race-server/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeConn struct {
	mu      sync.Mutex
	codec   Codec
	frames  [][]byte
	sendErr error
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{codec: JSONCodec}
}

func (f *fakeConn) Codec() Codec { return f.codec }

func (f *fakeConn) Send(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClientClosed
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

// lastUpdate decodes the most recent update frame.
func (f *fakeConn) lastUpdate(t *testing.T) UpdateMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.frames) - 1; i >= 0; i-- {
		var msg UpdateMessage
		if err := f.codec.Unmarshal(f.frames[i], &msg); err != nil {
			t.Fatalf("decode frame %d: %v", i, err)
		}
		if msg.Type == MsgUpdate {
			return msg
		}
	}
	t.Fatalf("no update frame among %d frames", len(f.frames))
	return UpdateMessage{}
}

var errBrokenPipe = errors.New("broken pipe")

func newTestServer(t *testing.T) (*GameServer, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s := NewGameServer(config.DefaultGame(),
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(1))),
	)
	return s, clock
}

func mustJoin(t *testing.T, s *GameServer, conn Conn) string {
	t.Helper()
	id, err := s.Join(conn)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	return id
}

// placePlayer overwrites a player's kinematic state.
func placePlayer(t *testing.T, s *GameServer, id string, x, y, speedX, speedY float64) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	p.X, p.Y, p.SpeedX, p.SpeedY = x, y, speedX, speedY
}

func playerState(t *testing.T, s *GameServer, id string) Player {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	return *p
}

func setStars(s *GameServer, stars ...Star) {
	s.mu.Lock()
	s.stars = append([]Star(nil), stars...)
	s.mu.Unlock()
}
