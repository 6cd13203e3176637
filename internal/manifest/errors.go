package manifest

import "errors"

var (
	ErrMalformedIdentity = errors.New("malformed package identity")
	ErrInvalidVersion    = errors.New("invalid version")
	ErrInvalidRecipe     = errors.New("invalid recipe")
	ErrInvalidPack       = errors.New("invalid package manifest")
)
