// Package main is a container health probe: it exits 0 when the catalog service reports SERVING over gRPC.
package main

import (
	"context"
	"log"
	"os"

	"github.com/abgdnv/storecatalog/internal/app"
	"github.com/abgdnv/storecatalog/internal/config"
	grpcImpl "github.com/abgdnv/storecatalog/internal/transport/grpc"
	"github.com/abgdnv/storecatalog/pkg/client/grpc/healthcheck"
	"github.com/abgdnv/storecatalog/pkg/config/configloader"
)

func main() {
	cfg, err := configloader.Load[*config.ProbeConfig](app.ServiceName)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	probe, err := healthcheck.NewProbe(cfg.Probe, cfg.Resilience.Retry)
	if err != nil {
		log.Fatalf("failed to create probe: %v", err)
	}
	defer func() {
		_ = probe.Close()
	}()

	if err := probe.Check(context.Background(), grpcImpl.ServiceName); err != nil {
		log.Printf("unhealthy: %v", err)
		_ = probe.Close()
		os.Exit(1)
	}
}
