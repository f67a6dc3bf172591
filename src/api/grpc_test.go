package api

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dialHealth(t *testing.T, h *HealthService) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = h.Serve(lis) }()
	t.Cleanup(h.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.GetStatus()
}

func TestHealthServiceTransitions(t *testing.T) {
	h := NewHealthService()
	client := dialHealth(t, h)

	for _, svc := range []string{"", GameServiceName} {
		if got := checkStatus(t, client, svc); got != healthpb.HealthCheckResponse_NOT_SERVING {
			t.Fatalf("%q before start = %v, want NOT_SERVING", svc, got)
		}
	}

	h.SetServing(true)
	for _, svc := range []string{"", GameServiceName} {
		if got := checkStatus(t, client, svc); got != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("%q after start = %v, want SERVING", svc, got)
		}
	}

	h.SetServing(false)
	if got := checkStatus(t, client, GameServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("after stop = %v, want NOT_SERVING", got)
	}
}
