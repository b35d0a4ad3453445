package handler

import (
	"strconv"

	"fleet-service/internal/apperr"

	"github.com/labstack/echo/v4"
)

// respondError maps any error onto the {statusCode, message} envelope.
// Message is always a stable domain code; internal details stay inside.
func respondError(c echo.Context, err error) error {
	appErr := apperr.FromError(err)
	return c.JSON(appErr.Status, echo.Map{
		"statusCode": appErr.Status,
		"message":    appErr.Code,
	})
}

// paramUint parses a numeric path parameter
func paramUint(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("VALIDATION.INVALID_PARAMETER")
	}
	return uint(value), nil
}
