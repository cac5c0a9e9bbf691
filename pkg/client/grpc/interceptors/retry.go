// Package interceptors holds the gRPC client interceptors used by the catalog tooling.
package interceptors

import (
	"time"

	"github.com/abgdnv/storecatalog/pkg/config"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

// NewRetryInterceptor retries transient failures with exponential backoff.
// Each attempt gets its own perAttempt deadline; a timed out attempt is retried while the caller's context allows it.
func NewRetryInterceptor(cfg config.RetryConfig, perAttempt time.Duration) grpc.UnaryClientInterceptor {
	opts := []retry.CallOption{
		retry.WithCodes(codes.Unavailable, codes.ResourceExhausted, codes.Aborted),
		retry.WithMax(cfg.MaxAttempts),
		retry.WithBackoff(retry.BackoffExponential(cfg.InitialBackoff)),
	}
	if perAttempt > 0 {
		opts = append(opts, retry.WithPerRetryTimeout(perAttempt))
	}
	return retry.UnaryClientInterceptor(opts...)
}
