package game

import (
	"fmt"
	"math"
)

// ApplyInput adds a steering intent to the player's velocity, scaled by the
// wall-clock time since that player's previous input (capped at MaxInputDelta).
// Unknown players are a silent no-op. Inputs outside InputBound are rejected
// with ErrSuspiciousInput and leave the player untouched.
func (s *GameServer) ApplyInput(id string, dx, dy float64) error {
	if !isFinite(dx) || !isFinite(dy) {
		return fmt.Errorf("%w: non-finite steering (%v, %v)", ErrMalformedInput, dx, dy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return nil
	}
	if math.Abs(dx) > s.cfg.InputBound || math.Abs(dy) > s.cfg.InputBound {
		s.rejectedInputs.Add(1)
		return fmt.Errorf("%w: (%v, %v)", ErrSuspiciousInput, dx, dy)
	}

	now := s.clock.Now()
	elapsed := now.Sub(p.lastInput)
	if elapsed > s.cfg.MaxInputDelta {
		elapsed = s.cfg.MaxInputDelta
	}
	if elapsed < 0 {
		elapsed = 0
	}
	dt := elapsed.Seconds()
	p.lastInput = now

	p.SpeedX = clamp(p.SpeedX+dx*s.cfg.InputAcceleration*dt, -s.cfg.MaxSpeed, s.cfg.MaxSpeed)
	p.SpeedY = clamp(p.SpeedY+dy*s.cfg.InputAcceleration*dt, -s.cfg.MaxSpeed, s.cfg.MaxSpeed)
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
