package scratch

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrAlreadyInside = errors.New("already inside scratch root")
	ErrNotInside     = errors.New("not inside scratch root")
	ErrUnconfined    = errors.New("scratch is not confined")
)
