package mq

import "errors"

// ErrDrop tells a backend not to redeliver a message, e.g. an undecodable payload.
var ErrDrop = errors.New("drop message")
