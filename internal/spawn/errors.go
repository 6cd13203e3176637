package spawn

import "errors"

var ErrSpawn = errors.New("spawn failed")
