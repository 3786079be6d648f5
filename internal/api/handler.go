package api

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/pkg/utils"
)

// LookupService defines the lookups exposed over HTTP.
type LookupService interface {
	Cities(ctx context.Context, creds auth.Credentials) (json.RawMessage, error)
	Regions(ctx context.Context, creds auth.Credentials, cityID int) (json.RawMessage, error)
	PackageSizes(ctx context.Context, creds auth.Credentials) (json.RawMessage, error)
}

// AlwaseetHandler handles the /api/alwaseet lookup routes.
type AlwaseetHandler struct {
	logger  *zap.Logger
	service LookupService
	source  CredentialSource
}

// NewAlwaseetHandler creates a new AlwaseetHandler.
func NewAlwaseetHandler(logger *zap.Logger, service LookupService, source CredentialSource) *AlwaseetHandler {
	return &AlwaseetHandler{
		logger:  logger,
		service: service,
		source:  source,
	}
}

// Cities handles GET /api/alwaseet/cities.
func (h *AlwaseetHandler) Cities(c *fiber.Ctx) error {
	const route = "cities"

	creds, err := h.source.Credentials(c)
	if err != nil {
		return h.fail(c, route, creds, err)
	}

	data, err := h.service.Cities(c.Context(), creds)
	if err != nil {
		return h.fail(c, route, creds, err)
	}
	return writeSuccess(c, route, "cities", data)
}

// Regions handles GET /api/alwaseet/regions?city_id=<int>.
func (h *AlwaseetHandler) Regions(c *fiber.Ctx) error {
	const route = "regions"

	cityID, err := parseCityID(c)
	if err != nil {
		return h.fail(c, route, auth.Credentials{}, err)
	}

	creds, err := h.source.Credentials(c)
	if err != nil {
		return h.fail(c, route, creds, err)
	}

	data, err := h.service.Regions(c.Context(), creds, cityID)
	if err != nil {
		return h.fail(c, route, creds, err)
	}
	return writeSuccess(c, route, "regions", data)
}

// PackageSizes handles GET /api/alwaseet/package-sizes.
func (h *AlwaseetHandler) PackageSizes(c *fiber.Ctx) error {
	const route = "package-sizes"

	creds, err := h.source.Credentials(c)
	if err != nil {
		return h.fail(c, route, creds, err)
	}

	data, err := h.service.PackageSizes(c.Context(), creds)
	if err != nil {
		return h.fail(c, route, creds, err)
	}
	return writeSuccess(c, route, "sizes", data)
}

func (h *AlwaseetHandler) fail(c *fiber.Ctx, route string, creds auth.Credentials, err error) error {
	status := statusFor(err)
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("user", utils.MaskSecret(creds.Username)),
		zap.Error(err),
	}
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("api."+route+".failed", fields...)
	} else {
		h.logger.Warn("api."+route+".failed", fields...)
	}
	return writeError(c, route, status, err)
}
