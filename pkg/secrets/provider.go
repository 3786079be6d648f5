package secrets

import "context"

// Provider reads JSON object secrets as flat string maps.
// The merchant credential secret is {"username": "...", "password": "..."}.
type Provider interface {
	// GetSecret returns the secret stored under name, decoded into a map.
	GetSecret(ctx context.Context, name string) (map[string]string, error)
}
