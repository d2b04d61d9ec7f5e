package mixer

import (
	"math"

	"github.com/ik5/audiomix/mixer/fixedpoint"
)

// sanitizeVolume clamps a caller-supplied gain to a value safe to ramp
// towards: NaN, negative, and subnormal inputs collapse to silence,
// positive infinity and anything above unity clamp to 1.0.
func sanitizeVolume(f float32) float32 {
	switch {
	case f != f: // NaN
		return 0
	case f < 0:
		return 0
	case isSubnormalFloat32(f):
		return 0
	case math.IsInf(float64(f), 1):
		return 1.0
	case f > 1.0:
		return 1.0
	default:
		return f
	}
}

func isSubnormalFloat32(f float32) bool {
	if f == 0 {
		return false
	}
	bits := math.Float32bits(f)
	exp := (bits >> 23) & 0xFF
	return exp == 0
}

func isNormalFloat32(f float32) bool {
	bits := math.Float32bits(f)
	exp := (bits >> 23) & 0xFF
	return exp != 0 && exp != 0xFF
}

// rampMakesProgress reports whether adding inc to prev, repeatedly, will
// ever actually move prev: a subnormal or zero increment, or one too small
// to change prev in floating point, is rejected so the caller snaps
// straight to the target instead of ramping forever without visible effect.
func rampMakesProgress(prev, inc float32) bool {
	if inc == 0 {
		return false
	}
	if !isNormalFloat32(inc) {
		return false
	}
	return prev+inc != prev
}

// setVolumeRampVariables recomputes the ramp for channel i (0 or 1) towards
// target over rampFrames frames, keeping the float and U4.12/U4.28
// representations coherent. A target equal to the already-committed
// t.mVolume[i] is reported as no change at all, per the AOSP mixer this
// module is modelled on (AudioMixerBase.cpp's newVolume == *pSetVolume
// check): any ramp already in flight keeps running on its existing
// increment rather than being recomputed. Past that, rampFrames <= 0 or a
// target equal to the current live ramp position (t.mPrevVolume[i]) takes
// the immediate-snap path instead of starting a ramp that cannot progress.
func setVolumeRampVariables(t *Track, target float32, rampFrames int, i int) {
	target = sanitizeVolume(target)
	if target == t.mVolume[i] {
		return
	}
	t.volume[i] = fixedpoint.U4_12FromFloat(target)

	if rampFrames <= 0 || target == t.mPrevVolume[i] {
		t.mVolume[i] = target
		t.mPrevVolume[i] = target
		t.mVolumeInc[i] = 0
		t.prevVolume[i] = fixedpoint.U4_28FromFloat(target)
		t.volumeInc[i] = 0
		return
	}

	floatInc := (target - t.mPrevVolume[i]) / float32(rampFrames)
	if !rampMakesProgress(t.mPrevVolume[i], floatInc) {
		t.mVolume[i] = target
		t.mPrevVolume[i] = target
		t.mVolumeInc[i] = 0
		t.prevVolume[i] = fixedpoint.U4_28FromFloat(target)
		t.volumeInc[i] = 0
		return
	}

	targetQ := fixedpoint.U4_28FromFloat(target)
	intInc := (targetQ - t.prevVolume[i]) / fixedpoint.U4_28(rampFrames)
	if intInc == 0 {
		t.mVolume[i] = target
		t.mPrevVolume[i] = target
		t.mVolumeInc[i] = 0
		t.prevVolume[i] = targetQ
		t.volumeInc[i] = 0
		return
	}

	t.mVolume[i] = target
	t.mVolumeInc[i] = floatInc
	t.volumeInc[i] = intInc
}

// setAuxRampVariables is setVolumeRampVariables's counterpart for the
// single auxiliary send level; see its comment for the short-circuit rule.
func setAuxRampVariables(t *Track, target float32, rampFrames int) {
	target = sanitizeVolume(target)
	if target == t.mAuxLevel {
		return
	}
	t.auxLevel = fixedpoint.U4_12FromFloat(target)

	if rampFrames <= 0 || target == t.mPrevAuxLevel {
		t.mAuxLevel = target
		t.mPrevAuxLevel = target
		t.mAuxInc = 0
		t.prevAuxLevel = fixedpoint.U4_28FromFloat(target)
		t.auxInc = 0
		return
	}

	floatInc := (target - t.mPrevAuxLevel) / float32(rampFrames)
	if !rampMakesProgress(t.mPrevAuxLevel, floatInc) {
		t.mAuxLevel = target
		t.mPrevAuxLevel = target
		t.mAuxInc = 0
		t.prevAuxLevel = fixedpoint.U4_28FromFloat(target)
		t.auxInc = 0
		return
	}

	targetQ := fixedpoint.U4_28FromFloat(target)
	intInc := (targetQ - t.prevAuxLevel) / fixedpoint.U4_28(rampFrames)
	if intInc == 0 {
		t.mAuxLevel = target
		t.mPrevAuxLevel = target
		t.mAuxInc = 0
		t.prevAuxLevel = targetQ
		t.auxInc = 0
		return
	}

	t.mAuxLevel = target
	t.mAuxInc = floatInc
	t.auxInc = intInc
}

func rampReachedTarget(prev, inc, target float32) bool {
	if inc > 0 {
		return prev+inc >= target
	}
	return prev+inc <= target
}

func rampReachedTargetQ(prev, inc, target fixedpoint.U4_28) bool {
	if inc > 0 {
		return prev+inc >= target
	}
	return prev+inc <= target
}

// adjustVolumeRamp finalizes any ramp that reached its target during the
// previous process cycle, snapping prevVolume/prevAuxLevel to the target
// and clearing the increment so the mixing kernels stop perturbing a
// steady-state gain. processGeneric calls it once per track in every cycle,
// after hook selection and just before that track's hook runs; the legacy
// single-track fast path does not call it.
func adjustVolumeRamp(t *Track, aux bool) {
	for i := 0; i < 2; i++ {
		if t.mVolumeInc[i] != 0 && rampReachedTarget(t.mPrevVolume[i], t.mVolumeInc[i], t.mVolume[i]) {
			t.mVolumeInc[i] = 0
			t.mPrevVolume[i] = t.mVolume[i]
		}
		if t.volumeInc[i] != 0 && rampReachedTargetQ(t.prevVolume[i], t.volumeInc[i], fixedpoint.U4_28FromFloat(t.mVolume[i])) {
			t.volumeInc[i] = 0
			t.prevVolume[i] = fixedpoint.U4_28FromFloat(t.mVolume[i])
		}
	}
	if !aux {
		return
	}
	if t.mAuxInc != 0 && rampReachedTarget(t.mPrevAuxLevel, t.mAuxInc, t.mAuxLevel) {
		t.mAuxInc = 0
		t.mPrevAuxLevel = t.mAuxLevel
	}
	if t.auxInc != 0 && rampReachedTargetQ(t.prevAuxLevel, t.auxInc, fixedpoint.U4_28FromFloat(t.mAuxLevel)) {
		t.auxInc = 0
		t.prevAuxLevel = fixedpoint.U4_28FromFloat(t.mAuxLevel)
	}
}
