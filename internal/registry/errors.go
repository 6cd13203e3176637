package registry

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("pack not found in registry")
	ErrInvalidRef = errors.New("invalid registry reference")
	ErrPush       = errors.New("push failed")
)
