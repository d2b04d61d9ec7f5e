package fixedpoint

import (
	"encoding/binary"
	"math"
)

// Unity gain constants shared by both the integer and floating point volume
// representations.
const (
	UnityGainInt   = 0x1000 // U4.12 unity gain
	UnityGainFloat = 1.0
)

// U4_12 is an unsigned fixed-point volume with 12 fractional bits, kept as a
// signed int16 so multiplies stay within a 16-bit-friendly range the way the
// legacy mixing path expects.
type U4_12 int16

// U4_28 is an unsigned fixed-point volume with 28 fractional bits, used for
// the ramp's previous-volume and increment state.
type U4_28 int32

// U4_12FromFloat clamps f to [0, UnityGainFloat] and scales it to U4.12.
func U4_12FromFloat(f float32) U4_12 {
	if f < 0 {
		f = 0
	}
	scaled := f * UnityGainInt
	if scaled >= UnityGainInt {
		return UnityGainInt
	}
	return U4_12(scaled)
}

// U4_28FromFloat scales f to U4.28 without clamping; callers that need the
// unity-gain ceiling enforce it before calling this (see the ramp setter).
func U4_28FromFloat(f float32) U4_28 {
	return U4_28(f * (1 << 28))
}

// FloatFromU4_28 is the inverse of U4_28FromFloat.
func FloatFromU4_28(v U4_28) float32 {
	return float32(v) / (1 << 28)
}

// Q4_27FromFloat converts a float sample in [-1, 1] to the Q4.27 fixed-point
// accumulator representation.
func Q4_27FromFloat(f float32) int32 {
	return int32(f * (1 << 27))
}

// FloatFromQ4_27 is the inverse of Q4_27FromFloat.
func FloatFromQ4_27(v int32) float32 {
	return float32(v) / (1 << 27)
}

// MulAdd performs a saturating-free multiply-accumulate of a Q0.15 sample by
// a U4.12 volume into a Q4.27 accumulator. Clamping, where needed, happens
// once at the final cast via Clamp16.
func MulAdd(sample int16, vol U4_12, acc int32) int32 {
	return acc + int32(sample)*int32(vol)
}

// Clamp16 saturates a 32-bit intermediate to the int16 range.
func Clamp16(sample int32) int16 {
	if (sample >> 15) != (sample >> 31) {
		if sample > 0 {
			return 0x7FFF
		}
		return -0x8000
	}
	return int16(sample)
}

// PackVolumeRL packs a left/right U4.12 volume pair into one word, the left
// channel in the low 16 bits and the right channel in the high 16 bits. This
// fixes the little-endian assumption the original mixer's volumeRL union
// carried implicitly (see SPEC_FULL.md §13 (a)).
func PackVolumeRL(l, r U4_12) uint32 {
	return uint32(uint16(l)) | uint32(uint16(r))<<16
}

// MulRL multiplies the left (or right) 16-bit lane of an interleaved stereo
// word inRL by the matching lane of a packed volume word vRL.
func MulRL(left bool, inRL, vRL uint32) int32 {
	if left {
		return int32(int16(inRL)) * int32(int16(vRL))
	}
	return int32(int16(inRL>>16)) * int32(int16(vRL>>16))
}

// MulAddRL is MulRL accumulated into acc.
func MulAddRL(left bool, inRL, vRL uint32, acc int32) int32 {
	return acc + MulRL(left, inRL, vRL)
}

// PackStereo16 interleaves two little-endian int16 samples the way a raw
// stereo PCM16 buffer stores them, for use with MulRL/MulAddRL.
func PackStereo16(l, r int16) uint32 {
	return uint32(uint16(l)) | uint32(uint16(r))<<16
}

// SampleFormat enumerates the linear PCM layouts accepted at track input.
type SampleFormat int

const (
	PCM8 SampleFormat = iota
	PCM16
	PCM24Packed
	PCM32
	PCMFloat
)

// BytesPerSample returns the on-the-wire size of one sample in format f.
func BytesPerSample(f SampleFormat) int {
	switch f {
	case PCM8:
		return 1
	case PCM16:
		return 2
	case PCM24Packed:
		return 3
	case PCM32, PCMFloat:
		return 4
	default:
		return 0
	}
}

// ReadSample decodes one little-endian sample of format f from b (which must
// be at least BytesPerSample(f) long) and normalizes it to [-1, 1].
func ReadSample(f SampleFormat, b []byte) float32 {
	switch f {
	case PCM8:
		// 8-bit PCM is conventionally unsigned with 0x80 as the zero point.
		return (float32(b[0]) - 128) / 128
	case PCM16:
		v := int16(binary.LittleEndian.Uint16(b))
		return float32(v) / 32768
	case PCM24Packed:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= -0x1000000 // sign-extend 24 -> 32
		}
		return float32(v) / 8388608
	case PCM32:
		v := int32(binary.LittleEndian.Uint32(b))
		return float32(v) / 2147483648
	case PCMFloat:
		bits := binary.LittleEndian.Uint32(b)
		return math.Float32frombits(bits)
	default:
		return 0
	}
}

// WriteSample encodes a normalized [-1, 1] float sample into b as format f,
// little-endian. b must be at least BytesPerSample(f) long.
func WriteSample(f SampleFormat, v float32, b []byte) {
	switch f {
	case PCM8:
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		b[0] = byte(int32(v*127) + 128)
	case PCM16:
		binary.LittleEndian.PutUint16(b, uint16(Clamp16(int32(v*32768))))
	case PCM24Packed:
		iv := int32(v * 8388608)
		if iv > 0x7FFFFF {
			iv = 0x7FFFFF
		} else if iv < -0x800000 {
			iv = -0x800000
		}
		b[0] = byte(iv)
		b[1] = byte(iv >> 8)
		b[2] = byte(iv >> 16)
	case PCM32:
		binary.LittleEndian.PutUint32(b, uint32(int32(float64(v)*2147483648)))
	case PCMFloat:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}
