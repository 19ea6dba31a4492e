package repository

import "errors"

// ErrUniqueViolation is wrapped around driver errors raised by a unique index.
var ErrUniqueViolation = errors.New("unique constraint violation")
