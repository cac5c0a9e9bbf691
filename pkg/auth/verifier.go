// Package auth verifies bearer tokens issued by an OpenID Connect identity provider.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abgdnv/storecatalog/pkg/config"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// fetchFunc loads a key set. It is jwk.Fetch outside of tests.
type fetchFunc func(ctx context.Context, url string) (jwk.Set, error)

func fetchJWKS(ctx context.Context, url string) (jwk.Set, error) {
	return jwk.Fetch(ctx, url)
}

// keyCache holds the last key set fetched from the provider. A failed refresh keeps serving the previous set.
type keyCache struct {
	mu          sync.RWMutex
	url         string
	fetch       fetchFunc
	set         jwk.Set
	fetchedAt   time.Time
	minInterval time.Duration
	now         func() time.Time
}

func (c *keyCache) fresh() (jwk.Set, bool) {
	if c.set != nil && c.now().Sub(c.fetchedAt) < c.minInterval {
		return c.set, true
	}
	return nil, false
}

func (c *keyCache) get(ctx context.Context) (jwk.Set, error) {
	c.mu.RLock()
	set, ok := c.fresh()
	c.mu.RUnlock()
	if ok {
		return set, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.fresh(); ok {
		return set, nil
	}
	set, err := c.fetch(ctx, c.url)
	if err != nil {
		if c.set != nil {
			return c.set, nil
		}
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", c.url, err)
	}
	c.set = set
	c.fetchedAt = c.now()
	return set, nil
}

// JWTVerifier checks signature, expiry, issuer and authorized party of a token.
type JWTVerifier struct {
	keys     *keyCache
	issuer   string
	clientID string
}

// NewJWTVerifier creates a verifier and fetches the key set once so that a wrong JWKS URL fails start-up.
func NewJWTVerifier(ctx context.Context, cfg config.IdP) (*JWTVerifier, error) {
	return newJWTVerifier(ctx, cfg, fetchJWKS)
}

func newJWTVerifier(ctx context.Context, cfg config.IdP, fetch fetchFunc) (*JWTVerifier, error) {
	v := &JWTVerifier{
		keys: &keyCache{
			url:         cfg.JwksURL,
			fetch:       fetch,
			minInterval: cfg.MinInterval,
			now:         time.Now,
		},
		issuer:   cfg.Issuer,
		clientID: cfg.ClientID,
	}
	if _, err := v.keys.get(ctx); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch failed: %w", err)
	}
	return v, nil
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	set, err := v.keys.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyset for verification: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithClaimValue("azp", v.clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return token, nil
}
