package archive

import "errors"

var (
	ErrOpen   = errors.New("archive open failed")
	ErrUnpack = errors.New("archive unpack failed")
	ErrPack   = errors.New("archive pack failed")
)
