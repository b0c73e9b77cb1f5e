package grpc_server

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/waste3d/vod-platform/internal/platform/logger"
)

// ServiceName is the health check name of the membership area.
const ServiceName = "vod.Membership"

// HealthServer exposes the standard gRPC health protocol plus server reflection
// for orchestrators and grpcurl.
type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
	log    *logger.Logger
}

func NewHealthServer(log *logger.Logger) *HealthServer {
	if log == nil {
		log = logger.Nop()
	}
	h := &HealthServer{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
		log:    log.With("component", "grpc"),
	}
	healthpb.RegisterHealthServer(h.srv, h.health)
	reflection.Register(h.srv)
	h.SetServing(false)
	return h
}

func (h *HealthServer) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until Stop is called or the listener fails.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.log.Info("gRPC health server listening", "addr", lis.Addr().String())
	return h.srv.Serve(lis)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.srv.GracefulStop()
}
