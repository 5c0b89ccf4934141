package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/content-autopilot/internal/generate"
	"github.com/jonathan/content-autopilot/internal/publish"
	"github.com/jonathan/content-autopilot/internal/validation"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Pipeline errors map by taxonomy: caller mistakes and missing configuration
// are 400, content that failed the quality gate is 422, and upstream platform
// failures are 502.
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		userNotFound *ErrUserNotFound

		validationErr *publish.ValidationError
		configErr     *publish.ConfigError
		unsupported   *generate.UnsupportedModelError
		qualityErr    *validation.QualityError
		transportErr  *publish.TransportError
		protocolErr   *publish.ProtocolError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr), errors.As(err, &configErr), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &qualityErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr), errors.As(err, &protocolErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
