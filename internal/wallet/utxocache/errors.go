package utxocache

import "errors"

var (
	// ErrInvalidCacheState reports a violated cache invariant. It is never corrected silently:
	// callers are expected to Invalidate and resynchronize.
	ErrInvalidCacheState = errors.New("invalid utxo cache state")
	// ErrReplay wraps block source failures; the watermark was not advanced.
	ErrReplay = errors.New("utxo cache replay failed")
	// ErrStopped is returned for requests sent to a cache that is not running.
	ErrStopped = errors.New("utxo cache stopped")
)
