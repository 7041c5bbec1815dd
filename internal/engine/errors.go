package engine

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveDog         = errors.New("no active dog")
	ErrResourceUnavailable = errors.New("resource unavailable")
)
