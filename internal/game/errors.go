package game

import "errors"

// ErrInvalidConfig is wrapped by every constructor that rejects its configuration.
var ErrInvalidConfig = errors.New("invalid configuration")
