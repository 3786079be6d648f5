package alwaseet

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/internal/metrics"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/utils"
)

// LoginClient performs the upstream credential exchange.
type LoginClient interface {
	Login(ctx context.Context, creds auth.Credentials) (string, error)
}

// TokenManager resolves merchant credentials to bearer tokens, caching one
// token per credential pair in its TokenStore.
//
// A cached token is returned without any expiry check; an upstream-side
// revocation only surfaces when a later lookup fails.
type TokenManager struct {
	logger *zap.Logger
	client LoginClient
	store  auth.TokenStore
	logins singleflight.Group
}

// NewTokenManager creates a TokenManager backed by store.
func NewTokenManager(logger *zap.Logger, client LoginClient, store auth.TokenStore) *TokenManager {
	return &TokenManager{
		logger: logger,
		client: client,
		store:  store,
	}
}

// Authenticate returns the token for creds, logging in only on a cache miss.
// Concurrent misses for the same credentials share a single login.
func (m *TokenManager) Authenticate(ctx context.Context, creds auth.Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", fmt.Errorf("alwaseet auth: %w", err)
	}
	key := creds.Key()

	if tok, ok := m.cached(ctx, key); ok {
		return tok, nil
	}

	// Login runs detached from the first caller's cancellation; Client.Login
	// still bounds it with the upstream timeout.
	v, err, shared := m.logins.Do(key, func() (any, error) {
		if tok, ok := m.cached(ctx, key); ok {
			return tok, nil
		}

		tok, err := m.client.Login(context.WithoutCancel(ctx), creds)
		if err != nil {
			m.logger.Warn("alwaseet.login_failed",
				zap.String("user", utils.MaskSecret(creds.Username)),
				zap.Error(err))
			return "", err
		}

		if err := m.store.Set(ctx, key, tok); err != nil {
			// the token is still good for this request
			m.logger.Warn("alwaseet.token_store_failed", zap.Error(err))
		}
		m.logger.Info("alwaseet.login_success", zap.String("user", utils.MaskSecret(creds.Username)))
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		m.logger.Debug("alwaseet.login_shared", zap.String("user", utils.MaskSecret(creds.Username)))
	}
	return v.(string), nil
}

// cached looks key up in the store. Store errors are logged and count as a miss.
func (m *TokenManager) cached(ctx context.Context, key string) (string, bool) {
	tok, ok, err := m.store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.IncTokenCacheLookup("error")
		m.logger.Warn("alwaseet.token_lookup_failed", zap.Error(err))
		return "", false
	case ok && tok != "":
		metrics.IncTokenCacheLookup("hit")
		return tok, true
	default:
		metrics.IncTokenCacheLookup("miss")
		return "", false
	}
}
