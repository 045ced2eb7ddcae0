package core

import "errors"

// ErrNotFound is returned by identifier lookups that matched nothing.
// A filter query returning zero rows is a normal empty result, not ErrNotFound.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a caller supplied a malformed or empty
// required identifier or filter value.
var ErrInvalidInput = errors.New("invalid input")
