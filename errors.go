package slabmap

import "errors"

// Sentinel errors returned by slabmap operations.
//
// Every other operation in this package reports absence or failure
// through a bool/option-shaped return, never through error — see §7 of
// the design notes. ErrWouldOverflow is the one genuine failure mode: a
// capacity request that cannot be satisfied without overflowing the
// platform's int.
var (
	// ErrWouldOverflow is returned by [SlabMap.TryReserve] and
	// [SlabMap.TryReserveExact] when the requested capacity would
	// overflow int arithmetic. The map is left unmodified.
	ErrWouldOverflow = errors.New("slabmap: capacity request would overflow")
)
