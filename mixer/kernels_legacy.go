package mixer

import "github.com/ik5/audiomix/mixer/fixedpoint"

// legacyFastPathEligible reports whether tracks qualifies for the single-
// track 16-bit stereo no-resample fast path: exactly one enabled track,
// PCM16 stereo in and out, matching sample rates, no aux send. This bypasses
// the float accumulator entirely and works in bit-exact Q4.12/Q4.27 fixed
// point, the one place this module still does fixed-point mixing (see
// SPEC_FULL.md §6.6).
func legacyFastPathEligible(tracks []*Track, mixerSampleRate int) bool {
	if len(tracks) != 1 {
		return false
	}
	t := tracks[0]
	return t.format == FormatPCM16 &&
		t.channelCount == 2 &&
		t.mixerChannelCount == 2 &&
		t.mixerFormat == MixInt16 &&
		t.sampleRate == mixerSampleRate &&
		!t.doesResample() &&
		t.auxBuffer == nil &&
		!(t.needs&needsMute != 0 && !t.needsRamp())
}

// processLegacyOneTrack implements the fast path, writing directly into
// t.mainBuffer as interleaved little-endian PCM16 stereo.
func processLegacyOneTrack(t *Track, frameCount int) error {
	needed := frameCount * 4
	if len(t.mainBuffer) < needed {
		fatalf("mixer: main buffer too small for frame count")
	}
	ramping := t.needsRamp()
	vl := t.prevVolume[0]
	vr := t.prevVolume[1]
	il := t.volumeInc[0]
	ir := t.volumeInc[1]
	steadyRL := fixedpoint.PackVolumeRL(t.volume[0], t.volume[1])

	for i := 0; i < frameCount; i++ {
		raw, err := t.pullFrame()
		if err != nil {
			return err
		}

		var inRL uint32
		if raw != nil {
			sl := int16(uint16(raw[0]) | uint16(raw[1])<<8)
			sr := int16(uint16(raw[2]) | uint16(raw[3])<<8)
			inRL = fixedpoint.PackStereo16(sl, sr)
		}

		var accL, accR int32
		if ramping {
			gl := fixedpoint.U4_12(vl >> 16)
			gr := fixedpoint.U4_12(vr >> 16)
			rl := fixedpoint.PackVolumeRL(gl, gr)
			accL = fixedpoint.MulRL(true, inRL, rl)
			accR = fixedpoint.MulRL(false, inRL, rl)
			vl += il
			vr += ir
		} else {
			accL = fixedpoint.MulRL(true, inRL, steadyRL)
			accR = fixedpoint.MulRL(false, inRL, steadyRL)
		}

		ol := fixedpoint.Clamp16(accL >> 12)
		or := fixedpoint.Clamp16(accR >> 12)

		off := i * 4
		t.mainBuffer[off] = byte(ol)
		t.mainBuffer[off+1] = byte(ol >> 8)
		t.mainBuffer[off+2] = byte(or)
		t.mainBuffer[off+3] = byte(or >> 8)
	}

	if ramping {
		t.prevVolume[0] = vl
		t.prevVolume[1] = vr
		t.mPrevVolume[0] = fixedpoint.FloatFromU4_28(vl)
		t.mPrevVolume[1] = fixedpoint.FloatFromU4_28(vr)
	}
	return nil
}
