package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/alwaseet-adapter/internal/alwaseet"
	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/internal/metrics"
)

// ErrorResponse is the body of every failed lookup.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, auth.ErrMissingCredentials):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, alwaseet.ErrAuthenticationFailed):
		return fiber.StatusUnauthorized
	case errors.Is(err, alwaseet.ErrUpstreamRejected):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func writeSuccess(c *fiber.Ctx, route, field string, data json.RawMessage) error {
	metrics.IncHTTPResponse(route, strconv.Itoa(fiber.StatusOK))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		field:     data,
	})
}

func writeError(c *fiber.Ctx, route string, status int, err error) error {
	metrics.IncHTTPResponse(route, strconv.Itoa(status))
	return c.Status(status).JSON(ErrorResponse{Detail: alwaseet.Detail(err)})
}
