package mixer

import (
	"math"

	"github.com/ik5/audiomix/mixer/fixedpoint"
)

func bytesPerInputFrame(t *Track) int {
	return fixedpoint.BytesPerSample(t.format) * t.channelCount
}

// readInputFrame decodes one raw input frame into up to two channel
// samples (mono tracks only fill index 0).
func readInputFrame(t *Track, raw []byte) (left, right float32) {
	bps := fixedpoint.BytesPerSample(t.format)
	left = fixedpoint.ReadSample(t.format, raw[:bps])
	if t.channelCount >= 2 {
		right = fixedpoint.ReadSample(t.format, raw[bps:2*bps])
	} else {
		right = left
	}
	return left, right
}

// advanceRamp steps the float ramp state for both gain channels and the
// aux level by one frame, leaving steady-state (non-ramping) channels
// untouched.
func advanceRamp(t *Track) {
	for i := 0; i < 2; i++ {
		if t.mVolumeInc[i] != 0 {
			t.mPrevVolume[i] += t.mVolumeInc[i]
		}
	}
	if t.mAuxInc != 0 {
		t.mPrevAuxLevel += t.mAuxInc
	}
}

// hookNop still drains the track's BufferProvider to keep its cadence
// (decoders, ring buffers) advancing, but contributes nothing to the
// accumulator; selected when a track is muted and not mid-ramp.
func hookNop(t *Track, out []float32, frameCount int, _ []int32, _ []float32) error {
	for i := 0; i < frameCount; i++ {
		_, err := t.pullFrame()
		if err != nil {
			return err
		}
	}
	return nil
}

// hookNoResample is the generic non-resampling kernel: input and mixer
// sample rates match, so one input frame is consumed per output frame.
func hookNoResample(t *Track, out []float32, frameCount int, _ []int32, aux []float32) error {
	outCh := t.mixerChannelCount
	for i := 0; i < frameCount; i++ {
		raw, err := t.pullFrame()
		if err != nil {
			return err
		}
		if raw == nil {
			advanceRamp(t)
			continue
		}
		l, r := readInputFrame(t, raw)
		mixFrame(t, l, r, out[i*outCh:i*outCh+outCh], aux, i)
		advanceRamp(t)
	}
	return nil
}

// hookResample drives the track's Resampler, which pulls from the
// BufferProvider itself and performs its own rate conversion; temp is the
// shared Q4.27/float-reinterpreted scratch buffer.
//
// SPEC_FULL.md §6.6 / spec.md §4.6: with no ramp and no aux send in
// flight, the resampler can apply the committed per-channel gain itself
// and the result is accumulated directly (one multiply-add, fused inside
// the resampler, instead of a second pass through mixFrame). That fusion
// is only unambiguous when there is no MONOVOL averaging to apply beyond
// channel 1 - true for outCh <= 2, where mixFrame always drives channels
// 0 and 1 independently regardless of input channel count (matching the
// resampler's own ch0/ch1 gain split). A bus wider than 2 channels still
// goes through the per-frame path below so mixFrame's MONOVOL averaging
// rule applies past channel 1.
func hookResample(t *Track, out []float32, frameCount int, temp []int32, aux []float32) error {
	if t.resampler == nil {
		fatalf("mixer: track %d selected the resample hook with no resampler attached", t.name)
	}
	outCh := t.mixerChannelCount
	fastPath := !t.needsRamp() && aux == nil && outCh <= 2
	if fastPath {
		t.resampler.SetVolume(t.mPrevVolume[0], t.mPrevVolume[1])
	} else {
		t.resampler.SetVolume(1, 1)
	}

	produced, err := t.resampler.Resample(temp[:frameCount*outCh], frameCount, t.bufferProvider)
	if err != nil {
		return err
	}

	if fastPath {
		accumulateFastPath(temp[:produced*outCh], out[:produced*outCh])
		return nil
	}

	for i := 0; i < produced; i++ {
		l := math.Float32frombits(uint32(temp[i*outCh]))
		r := l
		if outCh >= 2 {
			r = math.Float32frombits(uint32(temp[i*outCh+1]))
		}
		mixFrame(t, l, r, out[i*outCh:i*outCh+outCh], aux, i)
		advanceRamp(t)
	}
	return nil
}

// accumulateFastPath adds resampler output that already carries the
// committed per-channel gain (see hookResample's fast path) straight into
// the group accumulator, float32-bit-reinterpreted per sample.
func accumulateFastPath(temp []int32, out []float32) {
	for i := range out {
		out[i] += math.Float32frombits(uint32(temp[i]))
	}
}

// mixFrame applies gain to one decoded input frame and accumulates it
// into dst (sized to the group's output channel count) and, if non-nil,
// into aux. Per spec.md §4.6 and the original's MIXTYPE_MULTI/MONOVOL
// split (AudioMixerBase.cpp:1319-1327, only switching to MONOVOL when
// channels > FCC_2), a bus of one or two output channels always gets
// channel 0 and 1 driven independently by gl/gr - this applies to mono
// input panned across a stereo bus exactly as it does to stereo input.
// Only channels beyond index 1 fall back to the shared/averaged MONOVOL
// value, since there is no third or fourth independent gain to apply.
func mixFrame(t *Track, l, r float32, dst []float32, aux []float32, frameIdx int) {
	gl := t.mPrevVolume[0]
	gr := t.mPrevVolume[1]
	switch len(dst) {
	case 0:
	case 1:
		dst[0] += (l*gl + r*gr) * 0.5
	default:
		dst[0] += l * gl
		dst[1] += r * gr
		for ch := 2; ch < len(dst); ch++ {
			dst[ch] += (l + r) * 0.5
		}
	}
	if aux != nil {
		mono := (l + r) * 0.5 * t.mPrevAuxLevel
		aux[frameIdx] += mono
	}
}
