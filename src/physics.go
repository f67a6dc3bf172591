package game

import "star-race-server/config"

// stepPhysics advances one player by one tick: friction, integrate, clamp to
// the field, then an inelastic bounce on any axis resting on a bound. Velocity
// is not re-clamped to MaxSpeed here.
func stepPhysics(p *Player, cfg config.Game) {
	p.SpeedX *= cfg.Friction
	p.SpeedY *= cfg.Friction

	p.X += p.SpeedX
	p.Y += p.SpeedY

	maxX, maxY := cfg.MaxX(), cfg.MaxY()
	p.X = clamp(p.X, 0, maxX)
	p.Y = clamp(p.Y, 0, maxY)

	if p.X <= 0 || p.X >= maxX {
		p.SpeedX *= -cfg.BounceFactor
	}
	if p.Y <= 0 || p.Y >= maxY {
		p.SpeedY *= -cfg.BounceFactor
	}
}
