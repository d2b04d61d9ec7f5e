package mixer

import "github.com/ik5/audiomix/mixer/fixedpoint"

// FCCLimit is the fixed compile-time channel limit per track or mix bus.
const FCCLimit = 8

// Format is the linear PCM layout accepted at track input. It aliases
// fixedpoint.SampleFormat so conversions can be shared without the mixer
// package needing its own parallel enumeration.
type Format = fixedpoint.SampleFormat

const (
	FormatPCM8         = fixedpoint.PCM8
	FormatPCM16        = fixedpoint.PCM16
	FormatPCM24Packed  = fixedpoint.PCM24Packed
	FormatPCM32        = fixedpoint.PCM32
	FormatPCMFloat     = fixedpoint.PCMFloat
)

// MixFormat is the internal accumulator / output element type: either a
// 16-bit integer (which the legacy fast path keeps as Q0.15/Q4.27 fixed
// point) or float32.
type MixFormat int

const (
	MixInt16 MixFormat = iota
	MixFloat
)

func isValidFormat(f Format) bool {
	switch f {
	case FormatPCM8, FormatPCM16, FormatPCM24Packed, FormatPCM32, FormatPCMFloat:
		return true
	default:
		return false
	}
}

// ChannelMask is a position-based channel mask; ChannelCount extracts the
// number of set channel bits. Mono and stereo have named constants; masks
// beyond FCCLimit channels are rejected by Create.
type ChannelMask uint32

const (
	ChannelMono   ChannelMask = 0x1
	ChannelStereo ChannelMask = 0x3
)

// ChannelCount returns the number of channels encoded by m (population
// count of the mask bits).
func (m ChannelMask) ChannelCount() int {
	n := 0
	for m != 0 {
		n += int(m & 1)
		m >>= 1
	}
	return n
}

func isValidChannelMask(m ChannelMask) bool {
	return m.ChannelCount() <= FCCLimit
}

// Target is the first element of a SetParameter {target, param} pair.
type Target int

const (
	TargetTrack Target = iota
	TargetResample
	TargetRampVolume
	TargetVolume
)

// Param is the second element of a SetParameter {target, param} pair. The
// valid (Target, Param) combinations are enumerated in SPEC_FULL.md §6.4.
type Param int

const (
	ParamChannelMask Param = iota
	ParamMixerChannelMask
	ParamFormat
	ParamMixerFormat
	ParamMainBuffer
	ParamAuxBuffer
	ParamTeeBuffer
	ParamTeeBufferFrameCount

	ParamSampleRate
	ParamReset
	ParamRemove

	ParamVolume0
	ParamVolume1
	ParamAuxLevel
)
