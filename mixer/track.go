package mixer

import "github.com/ik5/audiomix/mixer/fixedpoint"

// needs is the per-track bitfield computed by validate, mirroring
// SPEC_FULL.md §6.5's classification (channel count in the low bits, then
// mute/resample/aux flags).
type needs uint32

const (
	needsChannelCountMask needs = 0x7
	needsMute             needs = 0x100
	needsResample         needs = 0x1000
	needsAux              needs = 0x10000
)

// trackHook is the selected per-track mixing kernel: it pulls input (via
// the track's BufferProvider, directly or through its Resampler), applies
// gain/ramp/aux, and accumulates frameCount frames into out (and, if aux is
// non-nil, into aux too). temp is the shared resample scratch buffer,
// used only by the resampling kernel.
type trackHook func(t *Track, out []float32, frameCount int, temp []int32, aux []float32) error

// Track holds one mixer input's complete configuration and live state. The
// mixer exclusively owns Track values; buffer pointers (mainBuffer,
// auxBuffer, teeBuffer) and the BufferProvider are non-owning references
// supplied by the caller.
type Track struct {
	name      int
	sessionID int
	enabled   bool

	// input side
	format         Format
	channelMask    ChannelMask
	channelCount   int
	sampleRate     int
	bufferProvider BufferProvider

	// current provider buffer bookkeeping (mIn rolling cursor)
	curBuf      Buffer
	framesLeft  int
	byteOffset  int

	// mix side
	mixerInFormat     MixFormat
	mixerFormat       MixFormat
	mixerChannelMask  ChannelMask
	mixerChannelCount int
	mainBuffer        []byte

	teeBuffer           []byte
	teeBufferFrameCount int

	// auxiliary send
	auxBuffer    []float32
	auxLevel     fixedpoint.U4_12
	prevAuxLevel fixedpoint.U4_28
	auxInc       fixedpoint.U4_28
	mAuxLevel    float32
	mPrevAuxLevel float32
	mAuxInc      float32

	// dual-representation per-channel gain, channels 0 (left/mono) and 1 (right)
	volume      [2]fixedpoint.U4_12
	prevVolume  [2]fixedpoint.U4_28
	volumeInc   [2]fixedpoint.U4_28
	mVolume     [2]float32
	mPrevVolume [2]float32
	mVolumeInc  [2]float32

	needs needs
	hook  trackHook

	resampler Resampler
}

// needsRamp reports whether any channel gain or the aux level is mid-ramp.
func (t *Track) needsRamp() bool {
	return t.volumeInc[0] != 0 || t.volumeInc[1] != 0 || t.auxInc != 0
}

// doesResample reports whether the track currently owns a resampler.
func (t *Track) doesResample() bool {
	return t.resampler != nil
}

// isVolumeMuted reports whether every float channel gain is exactly zero,
// per the convention spelled out in SPEC_FULL.md / spec.md §4.5.
func (t *Track) isVolumeMuted() bool {
	return t.mVolume[0] == 0 && t.mVolume[1] == 0
}

// pullChunkFrames is the number of frames a track requests from its
// BufferProvider at a time, independent of the current Process frameCount,
// matching the provider contract's own double-buffering granularity.
const pullChunkFrames = 256

// pullFrame returns the next single input frame's raw bytes, pulling a new
// chunk from bufferProvider when the current one is exhausted. A nil slice
// with a nil error means the provider has no data right now; the caller
// treats the rest of the current block as silence without advancing the
// ramp or aux state for the missing frames.
func (t *Track) pullFrame() ([]byte, error) {
	bytesPerFrame := bytesPerInputFrame(t)
	if t.framesLeft == 0 {
		t.curBuf = Buffer{FrameCount: pullChunkFrames}
		if err := t.bufferProvider.GetNextBuffer(&t.curBuf); err != nil {
			return nil, err
		}
		if t.curBuf.Raw == nil || t.curBuf.FrameCount == 0 {
			t.curBuf = Buffer{}
			return nil, nil
		}
		t.framesLeft = t.curBuf.FrameCount
		t.byteOffset = 0
	}
	b := t.curBuf.Raw[t.byteOffset : t.byteOffset+bytesPerFrame]
	t.byteOffset += bytesPerFrame
	t.framesLeft--
	if t.framesLeft == 0 {
		released := t.curBuf
		released.FrameCount = t.byteOffset / bytesPerFrame
		t.bufferProvider.ReleaseBuffer(&released)
		t.curBuf = Buffer{}
	}
	return b, nil
}
