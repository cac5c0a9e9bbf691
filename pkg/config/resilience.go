package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

type ResilienceConfig struct {
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

type RetryConfig struct {
	MaxAttempts    uint          `koanf:"maxattempts"`
	InitialBackoff time.Duration `koanf:"initialbackoff"`
}

type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

const (
	defaultRetryMaxAttempts    = 3
	defaultRetryInitialBackoff = 100 * time.Millisecond
	defaultConsecutiveFailures = 5
	defaultErrorRatePercent    = 60
	defaultOpenTimeout         = 30 * time.Second
)

// String returns a string representation of the ResilienceConfig.
func (c *ResilienceConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Retry ---\n")
	b.WriteString(fmt.Sprintf("  maxattempts: %d\n", c.Retry.MaxAttempts))
	b.WriteString(fmt.Sprintf("  initialbackoff: %v\n", c.Retry.InitialBackoff))
	b.WriteString("\n--- Circuit Breaker ---\n")
	b.WriteString(fmt.Sprintf("  consecutivefailures: %d\n", c.CircuitBreaker.ConsecutiveFailures))
	b.WriteString(fmt.Sprintf("  errorratepercent: %d\n", c.CircuitBreaker.ErrorRatePercent))
	b.WriteString(fmt.Sprintf("  opentimeout: %v\n", c.CircuitBreaker.OpenTimeout))
	return b.String()
}

// Validate fills unset values with defaults and rejects out-of-range ones.
func (c *ResilienceConfig) Validate() error {
	if c.Retry.MaxAttempts == 0 {
		log.Println("Using default value for retry.maxattempts")
		c.Retry.MaxAttempts = defaultRetryMaxAttempts
	}
	if c.Retry.InitialBackoff <= 0 {
		log.Println("Using default value for retry.initialbackoff")
		c.Retry.InitialBackoff = defaultRetryInitialBackoff
	}
	if c.CircuitBreaker.ConsecutiveFailures == 0 {
		log.Println("Using default value for circuitbreaker.consecutivefailures")
		c.CircuitBreaker.ConsecutiveFailures = defaultConsecutiveFailures
	}
	if c.CircuitBreaker.ErrorRatePercent == 0 {
		c.CircuitBreaker.ErrorRatePercent = defaultErrorRatePercent
	}
	if c.CircuitBreaker.ErrorRatePercent < 0 || c.CircuitBreaker.ErrorRatePercent > 100 {
		return fmt.Errorf("circuitbreaker.errorratepercent must be between 0 and 100")
	}
	if c.CircuitBreaker.OpenTimeout <= 0 {
		log.Println("Using default value for circuitbreaker.opentimeout")
		c.CircuitBreaker.OpenTimeout = defaultOpenTimeout
	}
	return nil
}
