package game

import (
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// idLength fits any 128-bit value in base 36.
const idLength = 25

// newID renders a random UUID in base 36, left-padded to a fixed width.
func newID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	if len(s) < idLength {
		s = strings.Repeat("0", idLength-len(s)) + s
	}
	return s
}

func (s *GameServer) randomColor() string {
	return fmt.Sprintf("hsl(%d, 80%%, 60%%)", s.rng.Intn(360))
}

// Join registers a new player for conn and queues its init message. The init
// frame is enqueued under the lock, so it precedes every update on conn.
func (s *GameServer) Join(conn Conn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrServerClosed
	}

	id := newID()
	for s.players[id] != nil {
		id = newID()
	}
	p := &Player{
		ID:        id,
		X:         s.rng.Float64() * s.cfg.MaxX(),
		Y:         s.rng.Float64() * s.cfg.MaxY(),
		Color:     s.randomColor(),
		lastInput: s.clock.Now(),
		conn:      conn,
	}
	s.players[id] = p
	s.order = append(s.order, id)
	s.scores[id] = 0

	init := InitMessage{
		Type:     MsgInit,
		PlayerID: id,
		Config:   publicConfig(s.cfg),
		Snapshot: s.snapshotLocked(),
	}
	frame, err := conn.Codec().Marshal(init)
	if err == nil {
		err = conn.Send(frame)
	}
	if err != nil {
		s.removeLocked(id)
		return "", fmt.Errorf("send init to %s: %w", id, err)
	}

	log.Printf("Player %s joined (%d connected).", id, len(s.players))
	return id, nil
}

// Leave removes the player and its score, then closes its connection.
// Unknown ids are ignored.
func (s *GameServer) Leave(id string) {
	s.mu.Lock()
	p, ok := s.players[id]
	if ok {
		s.removeLocked(id)
	}
	remaining := len(s.players)
	s.mu.Unlock()

	if !ok {
		return
	}
	_ = p.conn.Close()
	log.Printf("Player %s left (%d connected).", id, remaining)
}

func (s *GameServer) removeLocked(id string) {
	delete(s.players, id)
	delete(s.scores, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// sessionsLocked lists live connections in join order.
func (s *GameServer) sessionsLocked() []session {
	out := make([]session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, session{playerID: id, conn: s.players[id].conn})
	}
	return out
}
