package nandring

import "errors"

// Error taxonomy.
var (
	// ErrInvalidConfig is returned by Start when the configuration is
	// malformed: geometry out of range, spare area too small for the
	// page header, or Length below MinRingLength. Fatal — the host
	// cannot proceed.
	ErrInvalidConfig = errors.New("nandring: invalid configuration")

	// ErrRingExhausted is returned by Mount when fewer than Length/2
	// blocks are good. The host decides whether to reformat, reject, or
	// widen the range.
	ErrRingExhausted = errors.New("nandring: ring exhausted, fewer than half the blocks are good")

	// ErrRingFullyBad is returned when erase-next or bad-block migration
	// exhausts Length retries without finding a usable block, rather than
	// retrying forever.
	ErrRingFullyBad = errors.New("nandring: ring fully bad, no good block available")

	// ErrNotMounted is returned by operations that require the MOUNTED
	// state when the ring is not mounted.
	ErrNotMounted = errors.New("nandring: ring is not mounted")

	// ErrNotIdle is returned by operations that require the IDLE state.
	ErrNotIdle = errors.New("nandring: ring is not idle")

	// ErrWrongState is returned for any other lifecycle precondition
	// violation (e.g. Start called before Init).
	ErrWrongState = errors.New("nandring: operation not valid in current lifecycle state")

	// ErrBadDataSize is returned by WritePage when the supplied buffer is
	// not exactly PageDataSize bytes.
	ErrBadDataSize = errors.New("nandring: data buffer does not match page data size")

	// ErrNotImplemented is returned by SetUTCCorrection and SearchSessions.
	// Both are declared so callers can compile against their eventual
	// signatures, but neither has a settled on-disk format yet.
	ErrNotImplemented = errors.New("nandring: not implemented")
)
