package secrets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/cache"
	pkgsecrets "github.com/Checker-Finance/alwaseet-adapter/pkg/secrets"
)

// AWSResolver resolves secrets from AWS Secrets Manager into T,
// caching results locally to reduce API calls.
type AWSResolver[T any] struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
	cache    *cache.Cache[T]
}

// NewAWSResolver constructs a generic secret resolver.
func NewAWSResolver[T any](logger *zap.Logger, provider pkgsecrets.Provider, c *cache.Cache[T]) *AWSResolver[T] {
	return &AWSResolver[T]{
		logger:   logger,
		provider: provider,
		cache:    c,
	}
}

// Resolve fetches or returns the cached T stored under secretName.
// parse extracts T from the raw secret map; it should validate required fields.
func (r *AWSResolver[T]) Resolve(ctx context.Context, secretName string, parse func(map[string]string) (T, error)) (T, error) {
	key := strings.ToLower(secretName)

	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	secretMap, err := r.provider.GetSecret(ctx, secretName)
	if err != nil {
		r.logger.Warn("aws.secret_fetch_failed",
			zap.String("key", secretName),
			zap.Error(err))
		var zero T
		return zero, fmt.Errorf("resolve secret %q: %w", secretName, err)
	}

	v, err := parse(secretMap)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("parse secret %q: %w", secretName, err)
	}

	r.cache.Put(key, v)

	r.logger.Info("aws.secret_resolved", zap.String("key", secretName))
	return v, nil
}

// CredentialResolver loads Al-Waseet merchant credentials from one secret.
// Secret JSON format: {"username": "...", "password": "..."}
type CredentialResolver struct {
	inner      *AWSResolver[auth.Credentials]
	secretName string
}

// NewCredentialResolver builds a resolver for secretName.
func NewCredentialResolver(
	logger *zap.Logger,
	provider pkgsecrets.Provider,
	c *cache.Cache[auth.Credentials],
	secretName string,
) *CredentialResolver {
	return &CredentialResolver{
		inner:      NewAWSResolver(logger, provider, c),
		secretName: secretName,
	}
}

// Resolve returns the merchant credentials, from cache when available.
func (r *CredentialResolver) Resolve(ctx context.Context) (auth.Credentials, error) {
	return r.inner.Resolve(ctx, r.secretName, parseCredentials)
}

// parseCredentials extracts Credentials from the raw AWS secret map.
func parseCredentials(m map[string]string) (auth.Credentials, error) {
	creds := auth.Credentials{
		Username: m["username"],
		Password: m["password"],
	}
	if creds.Username == "" {
		return auth.Credentials{}, fmt.Errorf("missing required field 'username'")
	}
	if creds.Password == "" {
		return auth.Credentials{}, fmt.Errorf("missing required field 'password'")
	}
	return creds, nil
}
