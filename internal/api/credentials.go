package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
)

// Request headers carrying per-call merchant credentials.
const (
	HeaderUsername = "X-Alwaseet-Username"
	HeaderPassword = "X-Alwaseet-Password"
)

// CredentialSource yields the merchant credentials for an incoming request.
type CredentialSource interface {
	Credentials(c *fiber.Ctx) (auth.Credentials, error)
}

// StaticSource serves one fixed credential pair, typically from the environment.
type StaticSource struct {
	creds auth.Credentials
}

// NewStaticSource validates creds up front so a misconfigured deployment fails at startup.
func NewStaticSource(creds auth.Credentials) (*StaticSource, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("static credentials: %w", err)
	}
	return &StaticSource{creds: creds}, nil
}

func (s *StaticSource) Credentials(*fiber.Ctx) (auth.Credentials, error) {
	return s.creds, nil
}

// HeaderSource reads credentials from X-Alwaseet-Username / X-Alwaseet-Password.
type HeaderSource struct{}

func (HeaderSource) Credentials(c *fiber.Ctx) (auth.Credentials, error) {
	creds := auth.Credentials{
		Username: strings.TrimSpace(c.Get(HeaderUsername)),
		Password: c.Get(HeaderPassword),
	}
	var missing []string
	if creds.Username == "" {
		missing = append(missing, HeaderUsername)
	}
	if creds.Password == "" {
		missing = append(missing, HeaderPassword)
	}
	if len(missing) > 0 {
		return auth.Credentials{}, validationErrorf("missing required header(s): %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// CredentialResolver loads credentials from an external secret store.
type CredentialResolver interface {
	Resolve(ctx context.Context) (auth.Credentials, error)
}

// ResolverSource serves credentials held in a secret store (AWS Secrets Manager).
type ResolverSource struct {
	resolver CredentialResolver
}

func NewResolverSource(resolver CredentialResolver) *ResolverSource {
	return &ResolverSource{resolver: resolver}
}

func (s *ResolverSource) Credentials(c *fiber.Ctx) (auth.Credentials, error) {
	creds, err := s.resolver.Resolve(c.Context())
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("credential lookup failed: %w", err)
	}
	return creds, nil
}
