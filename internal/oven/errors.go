package oven

import "errors"

var (
	ErrInvalidState    = errors.New("invalid oven state")
	ErrRecipeActive    = errors.New("recipe already started")
	ErrNoRecipeActive  = errors.New("no recipe active")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnclosedSigil   = errors.New("unclosed variable sigil")
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrValidation      = errors.New("validation failed")
	ErrChildExit       = errors.New("child process exited with a non-zero status")
)
