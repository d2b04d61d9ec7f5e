// SPDX-License-Identifier: EPL-2.0

// Package fixedpoint provides the sample-format and fixed-point conversions
// the mixer's volume ramp and legacy 16-bit accumulation path depend on:
// U4.12/U4.28 volume representations, Q4.27 accumulator conversions, a
// multiply-add (MulAdd itself does not saturate; Clamp16 saturates the final
// result), clamp16, and the packed little-endian stereo volume word used by
// the single-track fast path.
//
// All functions here are pure and allocation-free so they can be called from
// the mixer's hot path.
package fixedpoint
