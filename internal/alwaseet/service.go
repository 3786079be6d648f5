package alwaseet

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
)

// Authenticator resolves credentials to an upstream token.
type Authenticator interface {
	Authenticate(ctx context.Context, creds auth.Credentials) (string, error)
}

// Service runs the authenticate → fetch sequence for each lookup.
// Each call makes at most one login and exactly one lookup request upstream.
type Service struct {
	logger *zap.Logger
	tokens Authenticator
	client *Client
}

// NewService wires a Service.
func NewService(logger *zap.Logger, tokens Authenticator, client *Client) *Service {
	return &Service{
		logger: logger,
		tokens: tokens,
		client: client,
	}
}

// Cities returns the upstream city list unchanged.
func (s *Service) Cities(ctx context.Context, creds auth.Credentials) (json.RawMessage, error) {
	return s.lookup(ctx, Cities, creds, func(token string) (json.RawMessage, error) {
		return s.client.Cities(ctx, creds.Key(), token)
	})
}

// Regions returns the upstream region list for cityID unchanged.
func (s *Service) Regions(ctx context.Context, creds auth.Credentials, cityID int) (json.RawMessage, error) {
	return s.lookup(ctx, Regions, creds, func(token string) (json.RawMessage, error) {
		return s.client.Regions(ctx, creds.Key(), token, cityID)
	})
}

// PackageSizes returns the upstream package size list unchanged.
func (s *Service) PackageSizes(ctx context.Context, creds auth.Credentials) (json.RawMessage, error) {
	return s.lookup(ctx, PackageSizes, creds, func(token string) (json.RawMessage, error) {
		return s.client.PackageSizes(ctx, creds.Key(), token)
	})
}

func (s *Service) lookup(ctx context.Context, res Resource, creds auth.Credentials, fetch func(token string) (json.RawMessage, error)) (json.RawMessage, error) {
	token, err := s.tokens.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	data, err := fetch(token)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("alwaseet.lookup_success",
		zap.String("resource", res.Name),
		zap.Int("bytes", len(data)))
	return data, nil
}
