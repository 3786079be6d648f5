package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrValidation marks a request rejected before any upstream call.
var ErrValidation = errors.New("validation error")

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// parseCityID reads the required integer city_id query parameter.
func parseCityID(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("city_id"))
	if raw == "" {
		return 0, validationErrorf("city_id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validationErrorf("city_id must be an integer, got %q", raw)
	}
	return id, nil
}
