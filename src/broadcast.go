package game

import (
	"errors"
	"log"

	"star-race-server/config"
)

func publicConfig(cfg config.Game) PublicConfig {
	return PublicConfig{
		MaxSpeed:              cfg.MaxSpeed,
		Friction:              cfg.Friction,
		StarCollisionDistance: cfg.StarCollisionDistance,
		FieldWidth:            cfg.FieldWidth,
		FieldHeight:           cfg.FieldHeight,
		CarSize:               cfg.CarSize,
	}
}

// snapshotLocked copies the public world state. Collections are never nil so
// they encode as [] and {}.
func (s *GameServer) snapshotLocked() Snapshot {
	snap := Snapshot{
		Stars:  make([]Star, len(s.stars)),
		Cars:   make([]Car, 0, len(s.order)),
		Scores: make(map[string]int, len(s.scores)),
	}
	copy(snap.Stars, s.stars)
	for _, id := range s.order {
		p := s.players[id]
		snap.Cars = append(snap.Cars, Car{
			ID:     p.ID,
			X:      p.X,
			Y:      p.Y,
			SpeedX: p.SpeedX,
			SpeedY: p.SpeedY,
			Color:  p.Color,
		})
	}
	for id, score := range s.scores {
		snap.Scores[id] = score
	}
	return snap
}

// broadcast encodes msg once per codec in use and enqueues it on every target.
// Failures are isolated to their connection; nothing is retried.
func (s *GameServer) broadcast(msg any, targets []session) {
	if len(targets) == 0 {
		return
	}
	frames := make(map[Codec][]byte, 2)
	for _, t := range targets {
		codec := t.conn.Codec()
		frame, ok := frames[codec]
		if !ok {
			var err error
			frame, err = codec.Marshal(msg)
			if err != nil {
				log.Printf("Broadcast: ERROR marshaling %s frame: %v", codec.Name(), err)
			}
			frames[codec] = frame
		}
		if frame == nil {
			s.droppedFrames.Add(1)
			continue
		}
		if err := t.conn.Send(frame); err != nil {
			s.droppedFrames.Add(1)
			if !errors.Is(err, ErrSendBufferFull) && !errors.Is(err, ErrClientClosed) {
				log.Printf("Broadcast: send to %s failed: %v", t.playerID, err)
			}
		}
	}
}
