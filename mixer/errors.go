package mixer

import (
	"errors"
	"fmt"
)

// Configuration errors returned from Create. These indicate a caller
// mistake the mixer can report rather than abort on, since track creation
// happens before the track participates in any process cycle.
var (
	ErrBadFormat      = errors.New("mixer: unsupported PCM format")
	ErrBadChannelMask = errors.New("mixer: channel count exceeds FCCLimit")
)

// fatalf panics on a protocol violation: a caller bug that, per SPEC_FULL.md
// §9, is reported as a fatal abort rather than propagated as an error
// (duplicate track name, unknown target/param, non-linear PCM to FORMAT,
// channel count out of range at a point where Create already validated it).
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
