package kv

import "errors"

var (
	// ErrNotConnected is returned by every [Store] operation while the
	// store has no Redis pool (no address configured). Callers interpret
	// it the same way as any other store error: fail open.
	ErrNotConnected = errors.New("kv store is not connected")

	// ErrKeyNotFound is returned by reads when the key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)
