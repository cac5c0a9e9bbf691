// Package healthcheck queries the gRPC health protocol of a running service.
package healthcheck

import (
	"context"
	"fmt"

	"github.com/abgdnv/storecatalog/pkg/client/grpc/interceptors"
	"github.com/abgdnv/storecatalog/pkg/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe checks whether a service reports SERVING.
type Probe struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewProbe creates a probe for cfg.Addr. Transient failures are retried according to retryCfg.
func NewProbe(cfg config.GrpcClientConfig, retryCfg config.RetryConfig, opts ...grpc.DialOption) (*Probe, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptors.NewRetryInterceptor(retryCfg, cfg.Timeout)),
	}, opts...)
	conn, err := grpc.NewClient(cfg.Addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client connection: %w", err)
	}
	return &Probe{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Check returns nil when service reports SERVING. An empty service asks for the overall status.
func (p *Probe) Check(ctx context.Context, service string) error {
	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("service %q is %s", service, resp.GetStatus())
	}
	return nil
}

func (p *Probe) Close() error {
	return p.conn.Close()
}
