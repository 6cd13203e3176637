package fridge

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("ingredient not found")
	ErrMalformedName = errors.New("malformed ingredient name")
	ErrArchive       = errors.New("archive operation failed")
)
