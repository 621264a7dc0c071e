package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[*Error]int{
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrInvalidRequest:     http.StatusBadRequest,
		ErrRoomNotFound:       http.StatusNotFound,
		ErrRoomNotAvailable:   http.StatusBadRequest,
		ErrInvalidDates:       http.StatusBadRequest,
		ErrBookingNotEligible: http.StatusNotFound,
		ErrTooManyRequests:    http.StatusTooManyRequests,
		ErrInternal:           http.StatusInternalServerError,
	}

	for e, status := range cases {
		assert.Equal(t, status, e.HTTPStatus(), e.Code)
	}
}

func TestWithCauseKeepsStatus(t *testing.T) {
	wrapped := ErrBookingNotEligible.WithCause(errors.New("booking still running"))

	assert.Equal(t, http.StatusNotFound, wrapped.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, wrapped.Kind.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, From(fmt.Errorf("submit: %w", wrapped)).HTTPStatus())
}

func TestWrappedErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("exclusion violation")
	err := fmt.Errorf("create booking: %w", ErrRoomNotAvailable.WithCause(cause))

	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAlreadyReviewed)
}

func TestFrom(t *testing.T) {
	typed := From(fmt.Errorf("lookup: %w", ErrHotelNotFound))
	assert.Equal(t, "HOTEL_NOT_FOUND", typed.Code)

	untyped := From(errors.New("connection reset"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", untyped.Code)
	assert.Equal(t, KindInfrastructure, untyped.Kind)
	assert.EqualError(t, untyped, "INTERNAL_SERVER_ERROR: connection reset")
}
