package config

import "time"

// Gameplay tuning. The first block is also sent to clients in the init message.
const (
	MaxSpeed              = 5.0
	Friction              = 0.95
	StarCollisionDistance = 30.0
	FieldWidth            = 800.0
	FieldHeight           = 600.0
	CarSize               = 30.0
)

// Simulation constants that stay on the server.
const (
	TickRate          = 60
	TickInterval      = time.Second / TickRate
	InputBound        = 2.0                    // anti-cheat bound on |x| and |y| of a single input
	InputAcceleration = 10.0                   // velocity gained per input unit per second
	MaxInputDelta     = 100 * time.Millisecond // cap on the time credited to one input
	BounceFactor      = 0.8
	StarMargin        = 20.0
	MinStars          = 1
	StarSpawnInterval = 3000 * time.Millisecond
)

// Game holds the tuning a GameServer runs with.
type Game struct {
	MaxSpeed              float64
	Friction              float64
	StarCollisionDistance float64
	FieldWidth            float64
	FieldHeight           float64
	CarSize               float64

	TickInterval      time.Duration
	InputBound        float64
	InputAcceleration float64
	MaxInputDelta     time.Duration
	BounceFactor      float64
	StarMargin        float64
	MinStars          int
	StarSpawnInterval time.Duration
}

// DefaultGame returns the standard tuning.
func DefaultGame() Game {
	return Game{
		MaxSpeed:              MaxSpeed,
		Friction:              Friction,
		StarCollisionDistance: StarCollisionDistance,
		FieldWidth:            FieldWidth,
		FieldHeight:           FieldHeight,
		CarSize:               CarSize,
		TickInterval:          TickInterval,
		InputBound:            InputBound,
		InputAcceleration:     InputAcceleration,
		MaxInputDelta:         MaxInputDelta,
		BounceFactor:          BounceFactor,
		StarMargin:            StarMargin,
		MinStars:              MinStars,
		StarSpawnInterval:     StarSpawnInterval,
	}
}

// MaxX is the largest x a car's top-left corner may take.
func (g Game) MaxX() float64 { return g.FieldWidth - g.CarSize }

// MaxY is the largest y a car's top-left corner may take.
func (g Game) MaxY() float64 { return g.FieldHeight - g.CarSize }
