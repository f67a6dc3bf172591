package game

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"star-race-server/config"
)

// Message discriminants.
const (
	MsgInit   = "init"
	MsgUpdate = "update"
	MsgInput  = "input"
)

var (
	ErrSuspiciousInput = errors.New("input exceeds allowed bounds")
	ErrMalformedInput  = errors.New("malformed input")
	ErrUnknownMessage  = errors.New("unknown message type")
	ErrSendBufferFull  = errors.New("send buffer full")
	ErrClientClosed    = errors.New("client closed")
	ErrServerClosed    = errors.New("game server closed")
)

// Player is the server-side record of one connected car.
type Player struct {
	ID     string
	X, Y   float64
	SpeedX float64
	SpeedY float64
	Color  string

	lastInput time.Time
	conn      Conn
}

type Star struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID string  `json:"id"`
}

// Car is the public projection of a Player.
type Car struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	SpeedX float64 `json:"speedX"`
	SpeedY float64 `json:"speedY"`
	Color  string  `json:"color"`
}

// Snapshot is the world state sent to clients. It never aliases live state.
type Snapshot struct {
	Stars  []Star         `json:"stars"`
	Cars   []Car          `json:"cars"`
	Scores map[string]int `json:"scores"`
}

// PublicConfig is the tuning clients need to predict movement locally.
type PublicConfig struct {
	MaxSpeed              float64 `json:"MAX_SPEED"`
	Friction              float64 `json:"FRICTION"`
	StarCollisionDistance float64 `json:"STAR_COLLISION_DISTANCE"`
	FieldWidth            float64 `json:"FIELD_WIDTH"`
	FieldHeight           float64 `json:"FIELD_HEIGHT"`
	CarSize               float64 `json:"CAR_SIZE"`
}

type InitMessage struct {
	Type     string       `json:"type"`
	PlayerID string       `json:"playerId"`
	Config   PublicConfig `json:"config"`
	Snapshot
}

type UpdateMessage struct {
	Type string `json:"type"`
	Snapshot
}

// clientMessage is the envelope of everything a client may send. Pointer
// fields distinguish missing values from zero.
type clientMessage struct {
	Type  string        `json:"type"`
	Input *inputPayload `json:"input"`
}

type inputPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Conn is a connected session as seen by the game loop. Send must not block.
type Conn interface {
	Codec() Codec
	Send(frame []byte) error
	Close() error
}

// Clock supplies wall-clock time to the simulation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// session pairs a player id with its connection for fan-out outside the lock.
type session struct {
	playerID string
	conn     Conn
}

type GameServer struct {
	mu           sync.Mutex
	cfg          config.Game
	clock        Clock
	rng          *rand.Rand
	players      map[string]*Player
	order        []string // join order; collision scans and snapshots follow it
	scores       map[string]int
	stars        []Star
	lastStarTime time.Time
	closed       bool

	upgrader   websocket.Upgrader
	sendBuffer int

	startedAt         time.Time
	running           atomic.Bool
	ticks             atomic.Uint64
	droppedFrames     atomic.Uint64
	rejectedInputs    atomic.Uint64
	malformedMessages atomic.Uint64
}

// Stats is a point-in-time view of server counters.
type Stats struct {
	Running           bool
	Uptime            time.Duration
	Ticks             uint64
	Players           int
	Stars             int
	DroppedFrames     uint64
	RejectedInputs    uint64
	MalformedMessages uint64
}
