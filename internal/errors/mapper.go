package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Map converts repo/infra errors into domain errors. Keeps the service layer
// clean by centralizing error translation; raw storage error text never
// reaches a client.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*Error); ok {
		return de
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return DuplicateRequest()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Internal()
	default:
		return Internal()
	}
}

// HTTPStatus maps a domain error kind to the transport status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidUpdate, KindInvalidAction,
		KindInvalidCredentials, KindDuplicateEmail, KindDuplicateRequest,
		KindSelfReference, KindIncorrectPassword, KindAlreadyReviewed:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidToken, KindTokenExpired:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface for err. Foreign errors
// collapse to the generic internal message.
func ClientMessage(err error) string {
	if de, ok := err.(*Error); ok {
		return de.Message
	}
	return Internal().Message
}
