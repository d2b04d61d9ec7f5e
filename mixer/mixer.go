package mixer

import (
	"github.com/ik5/audiomix/mixer/fixedpoint"
)

// Mixer state tracks whether the hook-selection pass (validate) needs to
// rerun before the next process cycle. A control-plane call that changes
// anything validate depends on (track existence, format, channel mask,
// mixer format, resampler presence) moves the state back to Invalidated.
const (
	stateInvalidated = iota
	stateRanOnce
	stateSteady
)

// Mixer is a fixed-output-rate multi-track PCM mixing engine. All control
// plane methods (Create, Destroy, Enable, Disable, SetParameter) and
// Process are not safe for concurrent use; a caller serializes them, the
// same discipline the BufferProvider/Resampler implementations rely on.
type Mixer struct {
	sampleRate int
	tracks     map[int]*Track
	state      int

	lastFrameCount int

	enabled []*Track
	groups  []*trackGroup

	groupAccum   map[uintptr][]float32
	groupAux     map[uintptr][]float32
	resampleTemp []int32

	// PreProcess and PostProcess are optional hooks run immediately before
	// and after the mixing kernels in Process, replacing the virtual
	// pre/postProcess overrides a subclass would provide in the original.
	PreProcess  func(m *Mixer)
	PostProcess func(m *Mixer)
}

// New creates a Mixer producing output at sampleRate.
func New(sampleRate int) *Mixer {
	return &Mixer{
		sampleRate: sampleRate,
		tracks:     make(map[int]*Track),
		state:      stateInvalidated,
		groupAccum: make(map[uintptr][]float32),
		groupAux:   make(map[uintptr][]float32),
	}
}

// SampleRate returns the mixer's fixed output sample rate.
func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// Create adds a new, initially disabled track named name. Creating a track
// with a name already in use is a caller bug and panics.
func (m *Mixer) Create(name int, channelMask ChannelMask, format Format, sessionID int) error {
	if _, exists := m.tracks[name]; exists {
		fatalf("mixer: track %d already exists", name)
	}
	if !isValidChannelMask(channelMask) {
		return ErrBadChannelMask
	}
	if !isValidFormat(format) {
		return ErrBadFormat
	}

	t := &Track{
		name:              name,
		sessionID:         sessionID,
		channelMask:       channelMask,
		channelCount:      channelMask.ChannelCount(),
		format:            format,
		sampleRate:        m.sampleRate,
		mixerInFormat:     MixFloat,
		mixerFormat:       MixFloat,
		mixerChannelMask:  ChannelStereo,
		mixerChannelCount: 2,
	}
	for i := 0; i < 2; i++ {
		t.volume[i] = fixedpoint.U4_12FromFloat(0)
		t.prevVolume[i] = fixedpoint.U4_28FromFloat(0)
		t.mVolume[i] = 0
		t.mPrevVolume[i] = 0
	}

	m.tracks[name] = t
	m.state = stateInvalidated
	return nil
}

// Destroy removes a track. Destroying an unknown name is a caller bug and
// panics.
func (m *Mixer) Destroy(name int) {
	m.exists(name)
	delete(m.tracks, name)
	m.state = stateInvalidated
}

// Enable marks a track as participating in the next Process cycle.
func (m *Mixer) Enable(name int) {
	t := m.exists(name)
	if !t.enabled {
		t.enabled = true
		m.state = stateInvalidated
	}
}

// Disable removes a track from participation without destroying it.
func (m *Mixer) Disable(name int) {
	t := m.exists(name)
	if t.enabled {
		t.enabled = false
		m.state = stateInvalidated
	}
}

func (m *Mixer) exists(name int) *Track {
	t, ok := m.tracks[name]
	if !ok {
		fatalf("mixer: unknown track %d", name)
	}
	return t
}

// SetParameter updates one (target, param) slot of track name. value's
// concrete type depends on param; an unexpected type or an unknown
// (target, param) combination is a caller bug and panics.
func (m *Mixer) SetParameter(name int, target Target, param Param, value any) {
	t := m.exists(name)

	switch target {
	case TargetTrack:
		m.setTrackParameter(t, param, value)
	case TargetResample:
		m.setResampleParameter(t, param, value)
	case TargetRampVolume, TargetVolume:
		rampFrames := 0
		if target == TargetRampVolume {
			rampFrames = m.lastFrameCount
		}
		switch param {
		case ParamVolume0:
			setVolumeRampVariables(t, value.(float32), rampFrames, 0)
		case ParamVolume1:
			setVolumeRampVariables(t, value.(float32), rampFrames, 1)
		case ParamAuxLevel:
			setAuxRampVariables(t, value.(float32), rampFrames)
		default:
			fatalf("mixer: unknown volume parameter %d", param)
		}
		// A volume change can flip a track's mute classification (needsMute
		// depends on both the gain and whether a ramp is in flight), so
		// re-run hook selection before the next Process call. The original
		// mixer scopes invalidation more narrowly; this module trades that
		// for a simpler, always-correct rule.
		m.state = stateInvalidated
	default:
		fatalf("mixer: unknown target %d", target)
	}
}

func (m *Mixer) setTrackParameter(t *Track, param Param, value any) {
	switch param {
	case ParamChannelMask:
		cm := value.(ChannelMask)
		if !isValidChannelMask(cm) {
			fatalf("mixer: channel mask %#x exceeds FCCLimit", uint32(cm))
		}
		changed := cm.ChannelCount() != t.channelCount
		t.channelMask = cm
		t.channelCount = cm.ChannelCount()
		if changed {
			m.recreateResamplerIfAttached(t)
		}
		m.state = stateInvalidated
	case ParamFormat:
		f := value.(Format)
		if !isValidFormat(f) {
			fatalf("mixer: unsupported format %v", f)
		}
		t.format = f
		m.state = stateInvalidated
	case ParamMixerChannelMask:
		cm := value.(ChannelMask)
		if !isValidChannelMask(cm) {
			fatalf("mixer: mixer channel mask %#x exceeds FCCLimit", uint32(cm))
		}
		t.mixerChannelMask = cm
		t.mixerChannelCount = cm.ChannelCount()
		m.state = stateInvalidated
	case ParamMixerFormat:
		t.mixerFormat = value.(MixFormat)
		m.state = stateInvalidated
	case ParamMainBuffer:
		t.mainBuffer = value.([]byte)
		m.state = stateInvalidated
	case ParamAuxBuffer:
		t.auxBuffer = value.([]float32)
		m.state = stateInvalidated
	case ParamTeeBuffer:
		t.teeBuffer = value.([]byte)
	case ParamTeeBufferFrameCount:
		t.teeBufferFrameCount = value.(int)
	default:
		fatalf("mixer: unknown track parameter %d", param)
	}
}

func (m *Mixer) setResampleParameter(t *Track, param Param, value any) {
	switch param {
	case ParamSampleRate:
		rate := value.(int)
		t.sampleRate = rate
		switch {
		case t.resampler != nil:
			t.resampler.SetSampleRate(rate)
		case rate != m.sampleRate:
			// spec.md §4.4: a track creates a resampler iff its rate
			// differs from the device rate; the caller is not required to
			// attach one itself via SetResampler first.
			if NewResampler == nil {
				fatalf("mixer: track %d needs a resampler for rate %d but no resampler implementation is registered (import the resampler package)", t.name, rate)
			}
			t.resampler = NewResampler(t.format, t.channelCount, rate, m.sampleRate)
		}
		m.state = stateInvalidated
	case ParamReset:
		if t.resampler != nil {
			t.resampler.Reset()
		}
	case ParamRemove:
		t.resampler = nil
		// spec.md §4.4: removing a track's resampler restores its rate to
		// the device rate, so the next validate doesn't see a stale rate
		// mismatch and re-select the resample hook with nothing attached.
		t.sampleRate = m.sampleRate
		m.state = stateInvalidated
	default:
		fatalf("mixer: unknown resample parameter %d", param)
	}
}

// recreateResamplerIfAttached destroys and rebuilds t's resampler at its
// current rate when its input channel count has just changed. A Resampler
// is constructed with a fixed channel count (resampler/cubic.go sizes its
// ring-buffer frames and raw input frame to it); only ParamChannelMask,
// which changes the input side the resampler decodes, can invalidate that.
// ParamMixerChannelMask changes the output side instead, which a
// Resampler's Resample call already derives per-call from len(dst), so it
// never needs recreating for that change alone.
func (m *Mixer) recreateResamplerIfAttached(t *Track) {
	if t.resampler == nil {
		return
	}
	if NewResampler == nil {
		fatalf("mixer: track %d needs its resampler recreated for a channel count change but no resampler implementation is registered (import the resampler package)", t.name)
	}
	t.resampler = NewResampler(t.format, t.channelCount, t.sampleRate, m.sampleRate)
}

// SetBufferProvider attaches the BufferProvider a track pulls input from.
// Like SetResampler, this is exposed directly rather than folded into
// SetParameter because a BufferProvider value does not fit the
// (Target, Param, value) shape the other control-plane calls share.
func (m *Mixer) SetBufferProvider(name int, p BufferProvider) {
	t := m.exists(name)
	t.bufferProvider = p
	m.state = stateInvalidated
}

// SetResampler attaches or replaces the Resampler instance a track uses,
// a control-plane action the original performed implicitly inside
// recreateResampler; this module exposes it directly since resampler
// construction depends on the sibling resampler package, not on mixer
// itself.
func (m *Mixer) SetResampler(name int, r Resampler) {
	t := m.exists(name)
	t.resampler = r
	m.state = stateInvalidated
}
