package api

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GameServiceName is the health service name reported for the game loop.
const GameServiceName = "starrace.Game"

// HealthService exposes the standard gRPC health protocol for orchestrators.
type HealthService struct {
	server *grpc.Server
	health *health.Server
}

// NewHealthService starts out NOT_SERVING until SetServing(true).
func NewHealthService() *HealthService {
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	h := &HealthService{server: gs, health: hs}
	h.SetServing(false)
	return h
}

// SetServing updates both the overall and the game service status.
func (h *HealthService) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(GameServiceName, status)
}

// Serve blocks serving gRPC on lis.
func (h *HealthService) Serve(lis net.Listener) error {
	return h.server.Serve(lis)
}

// Stop marks everything NOT_SERVING and drains in-flight RPCs.
func (h *HealthService) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
