package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories and services react to.
const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// ErrorCode returns the SQLSTATE of a postgres error, or "".
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether the transaction can be replayed as is.
func IsRetryable(err error) bool {
	switch ErrorCode(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}

// IsUniqueViolation matches a unique violation, optionally on one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func IsExclusionViolation(err error) bool {
	return ErrorCode(err) == CodeExclusionViolation
}
