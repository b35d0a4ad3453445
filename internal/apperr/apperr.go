// Package apperr defines the domain error taxonomy shared by all layers.
// Errors carry an HTTP status and a stable machine-readable code; the
// handler layer turns them into the {statusCode, message} envelope.
// Codes are never pre-translated prose.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain error with a stable code
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string {
	return e.Code
}

// New creates a domain error with the given HTTP status and code
func New(status int, code string) *Error {
	return &Error{Status: status, Code: code}
}

// Shortcut constructors for the taxonomy used across the service.
func Unauthorized(code string) *Error { return New(http.StatusUnauthorized, code) }
func Forbidden(code string) *Error    { return New(http.StatusForbidden, code) }
func NotFound(code string) *Error     { return New(http.StatusNotFound, code) }
func Conflict(code string) *Error     { return New(http.StatusConflict, code) }
func BadRequest(code string) *Error   { return New(http.StatusBadRequest, code) }
func Internal(code string) *Error     { return New(http.StatusInternalServerError, code) }

// Domain codes. Two distinct Forbidden codes exist on purpose: a role
// violation and a company-ownership violation are different conditions.
var (
	ErrInvalidCredentials        = Unauthorized("AUTH.INVALID_CREDENTIALS")
	ErrUnauthorized              = Unauthorized("AUTH.UNAUTHORIZED")
	ErrForbidden                 = Forbidden("AUTH.FORBIDDEN")
	ErrCompanyNotFound           = NotFound("COMPANY.NOT_FOUND")
	ErrCompanyInvalidCredentials = Unauthorized("COMPANY.INVALID_CREDENTIALS")
	ErrUserNotFound              = NotFound("USER.NOT_FOUND")
	ErrUserExistsByLogin         = Conflict("USER.EXISTS_BY_LOGIN")
	ErrUserNotInCompany          = Forbidden("USER.DOESNOT_BELONG_TO_COMPANY")
	ErrUserCannotUpdateOther     = Forbidden("USER.CANNOT_UPDATE_OTHER_USER")
	ErrVehicleNotFound           = NotFound("VEHICLE.NOT_FOUND")
	ErrVehicleExistsByVin        = Conflict("VEHICLE.EXISTS_BY_VIN")
	ErrTelemetryAlreadyExists    = Conflict("TELEMETRY.ALREADY_EXISTS")
	ErrTelemetryBadRequest       = BadRequest("TELEMETRY.BAD_REQUEST")
	ErrTelemetryUnauthorized     = Unauthorized("TELEMETRY.API_UNAUTHORIZED")
	ErrTelemetryAPI              = Internal("TELEMETRY.API_ERROR")
	ErrInternal                  = Internal("INTERNAL_SERVER_ERROR")
)

// FromError returns the domain error wrapped in err, or a generic internal
// error when err carries no domain code. Internal details never cross the
// HTTP boundary.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}
