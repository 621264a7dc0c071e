// Package apperror defines the typed failures services return and the HTTP
// status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInfrastructure Kind = iota
	KindAuth
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
	KindEligibility
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindEligibility:
		return "eligibility"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "infrastructure"
	}
}

// HTTPStatus is the response status for failures of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAuth:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindConflict, KindEligibility:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure with a stable client-facing code. Status overrides the
// kind's status when set.
type Error struct {
	Kind   Kind
	Code   string
	Status int
	Err    error
}

func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// withStatus pins the response status of a sentinel regardless of its kind.
func withStatus(e *Error, status int) *Error {
	e.Status = status
	return e
}

// HTTPStatus is the response status for e.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.HTTPStatus()
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code so wrapped copies compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithCause returns a copy of e carrying err as its cause.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Status: e.Status, Err: err}
}

var (
	ErrUnauthorized       = New(KindAuth, "UNAUTHORIZED")
	ErrInvalidCredentials = New(KindAuth, "INVALID_CREDENTIALS")

	ErrForbidden = New(KindAuthorization, "FORBIDDEN")

	ErrInvalidRequest = New(KindValidation, "INVALID_REQUEST")

	ErrUserNotFound    = New(KindNotFound, "USER_NOT_FOUND")
	ErrHotelNotFound   = New(KindNotFound, "HOTEL_NOT_FOUND")
	ErrRoomNotFound    = New(KindNotFound, "ROOM_NOT_FOUND")
	ErrBookingNotFound = New(KindNotFound, "BOOKING_NOT_FOUND")

	ErrEmailAlreadyExists = New(KindConflict, "EMAIL_ALREADY_EXISTS")
	ErrRoomAlreadyExists  = New(KindConflict, "ROOM_ALREADY_EXISTS")
	ErrRoomNotAvailable   = New(KindConflict, "ROOM_NOT_AVAILABLE")
	ErrAlreadyReviewed    = New(KindConflict, "ALREADY_REVIEWED")

	ErrInvalidDates          = New(KindEligibility, "INVALID_DATES")
	ErrInvalidCapacity       = New(KindEligibility, "INVALID_CAPACITY")
	ErrBookingNotEligible    = withStatus(New(KindEligibility, "BOOKING_NOT_ELIGIBLE"), http.StatusNotFound)
	ErrBookingNotCancellable = New(KindEligibility, "BOOKING_NOT_CANCELLABLE")

	ErrTooManyRequests = New(KindRateLimited, "TOO_MANY_REQUESTS")

	ErrInternal = New(KindInfrastructure, "INTERNAL_SERVER_ERROR")
)

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return ErrInternal.WithCause(err)
}

// From extracts the typed error from err. Anything untyped is internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
