package config

import (
	"fmt"
	"strings"
	"time"
)

// GrpcClientConfig describes how the health probe reaches the gRPC server.
type GrpcClientConfig struct {
	Addr    string        `koanf:"addr"`
	Timeout time.Duration `koanf:"timeout"`
}

const defaultProbeTimeout = 2 * time.Second

// String returns a string representation of the gRPC client configuration.
func (c *GrpcClientConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Probe ---\n")
	b.WriteString(fmt.Sprintf("  addr: %s\n", c.Addr))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *GrpcClientConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("probe gRPC address is not configured")
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultProbeTimeout
	}
	return nil
}
