package api

import (
	"net/http"
	"time"

	game "star-race-server/src"

	"github.com/go-chi/chi/v5"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
	HealthDown     HealthStatus = "down"
)

// degradedDropRatio is the share of dropped frames per tick and player above
// which the server reports itself degraded.
const degradedDropRatio = 0.05

// MetricsResponse is the complete metrics response structure
type MetricsResponse struct {
	Timestamp         time.Time    `json:"timestamp"`
	Health            HealthStatus `json:"health"`
	HealthDescription string       `json:"health_description"`
	UptimeSec         int64        `json:"uptime_sec"`
	Ticks             uint64       `json:"ticks"`
	TickRateHz        float64      `json:"tick_rate_hz"`
	ConnectedPlayers  int          `json:"connected_players"`
	Stars             int          `json:"stars"`
	DroppedFrames     uint64       `json:"dropped_frames"`
	RejectedInputs    uint64       `json:"rejected_inputs"`
	MalformedMessages uint64       `json:"malformed_messages"`
}

// MetricsHandler reports game server metrics
type MetricsHandler struct {
	gameServer *game.GameServer
}

func NewMetricsHandler(gameServer *game.GameServer) *MetricsHandler {
	return &MetricsHandler{gameServer: gameServer}
}

// Routes registers metrics routes
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.GetMetrics)
	r.Get("/metrics/world", h.GetWorld)
}

// GetMetrics returns counters and a derived health status.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collectMetrics())
}

// GetWorld returns the current world snapshot.
func (h *MetricsHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	if !h.gameServer.Running() {
		errorJSON(w, http.StatusServiceUnavailable, "game loop not running")
		return
	}
	writeJSON(w, http.StatusOK, h.gameServer.Snapshot())
}

func (h *MetricsHandler) collectMetrics() MetricsResponse {
	stats := h.gameServer.Stats()
	interval := h.gameServer.Config().TickInterval

	health, description := evaluateHealth(stats)
	resp := MetricsResponse{
		Timestamp:         time.Now(),
		Health:            health,
		HealthDescription: description,
		UptimeSec:         int64(stats.Uptime / time.Second),
		Ticks:             stats.Ticks,
		ConnectedPlayers:  stats.Players,
		Stars:             stats.Stars,
		DroppedFrames:     stats.DroppedFrames,
		RejectedInputs:    stats.RejectedInputs,
		MalformedMessages: stats.MalformedMessages,
	}
	if interval > 0 {
		resp.TickRateHz = float64(time.Second) / float64(interval)
	}
	return resp
}

func evaluateHealth(stats game.Stats) (HealthStatus, string) {
	if !stats.Running {
		return HealthDown, "game loop is not running"
	}
	if stats.Ticks > 0 && stats.Players > 0 {
		ratio := float64(stats.DroppedFrames) / float64(stats.Ticks*uint64(stats.Players))
		if ratio > degradedDropRatio {
			return HealthDegraded, "clients are falling behind the broadcast rate"
		}
	}
	return HealthHealthy, "game loop running"
}
