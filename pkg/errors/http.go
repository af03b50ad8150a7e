package errors

import (
	"errors"
)

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeValidation, ErrorTypeInvalidRequest:
		return StatusBadRequest
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeRateLimitExceeded:
		return StatusTooManyRequests
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeMethodNotAllowed:
		return StatusMethodNotAllowed
	default:
		return StatusInternalServerError
	}
}

// GetHumanReadableMessage returns the caller-facing message. Anything that is
// not an AppError, or that maps to a 5xx, collapses to a generic message.
func GetHumanReadableMessage(err error) string {
	if err == nil {
		return InternalErrorMessage
	}

	var appErr *AppError
	if errors.As(err, &appErr) && HTTPStatusCode(err) < StatusInternalServerError {
		return appErr.Message
	}

	// SECURITY: avoid leaking internal error strings (transport errors, panics, etc.)
	return InternalErrorMessage
}

const InternalErrorMessage = "Internal server error"
