package auth

import "context"

// TokenStore holds upstream bearer tokens keyed by Credentials.Key().
// Implementations must be safe for concurrent use.
type TokenStore interface {
	// Get returns the token for key and whether one was found.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores token under key, replacing any previous value.
	Set(ctx context.Context, key, token string) error

	// HealthCheck reports whether the backing storage is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
