package redis

import "errors"

// ErrManagerClosed is returned when a client is requested after Close.
var ErrManagerClosed = errors.New("redis manager is closed")
