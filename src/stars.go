package game

import (
	"math"
	"time"
)

func (s *GameServer) newStar() Star {
	m := s.cfg.StarMargin
	return Star{
		X:  s.rng.Float64()*(s.cfg.FieldWidth-2*m) + m,
		Y:  s.rng.Float64()*(s.cfg.FieldHeight-2*m) + m,
		ID: newID(),
	}
}

// collectStars awards each star to the first player, in join order, whose car
// center lies within StarCollisionDistance. A star is collected at most once.
func (s *GameServer) collectStars(now time.Time) {
	kept := s.stars[:0]
	for _, star := range s.stars {
		id, ok := s.collectorLocked(star)
		if !ok {
			kept = append(kept, star)
			continue
		}
		s.scores[id]++
		s.lastStarTime = now
	}
	s.stars = kept
}

func (s *GameServer) collectorLocked(star Star) (string, bool) {
	half := s.cfg.CarSize / 2
	for _, id := range s.order {
		p := s.players[id]
		if math.Hypot(p.X+half-star.X, p.Y+half-star.Y) < s.cfg.StarCollisionDistance {
			return id, true
		}
	}
	return "", false
}

// spawnStars adds one star when the field is below MinStars and the spawn
// interval has passed since the last collection or spawn.
func (s *GameServer) spawnStars(now time.Time) {
	if len(s.stars) >= s.cfg.MinStars || now.Sub(s.lastStarTime) < s.cfg.StarSpawnInterval {
		return
	}
	s.stars = append(s.stars, s.newStar())
	s.lastStarTime = now
}
