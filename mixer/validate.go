package mixer

import (
	"sort"
	"unsafe"
)

// validate runs the hook-selection pass over every enabled track,
// computing its needs bitfield and choosing the trackHook that will run
// during the next Process call. It is the Go counterpart of
// process__validate's first pass; the original's "run the real process
// once from inside validate" re-entrancy is replaced here by an explicit
// state machine (stateInvalidated/stateRanOnce/stateSteady) instead of the
// call trick.
func (m *Mixer) validate() {
	for _, t := range m.tracks {
		if !t.enabled {
			t.hook = nil
			continue
		}
		t.needs = needs(t.channelCount) & needsChannelCountMask
		if t.sampleRate != m.sampleRate || t.doesResample() {
			t.needs |= needsResample
		}
		if t.auxBuffer != nil {
			t.needs |= needsAux
		}
		if t.isVolumeMuted() && !t.needsRamp() {
			t.needs |= needsMute
		}
		t.hook = selectTrackHook(t)
	}

	names := make([]int, 0, len(m.tracks))
	for n, t := range m.tracks {
		if t.enabled {
			names = append(names, n)
		}
	}
	sort.Ints(names)
	m.enabled = m.enabled[:0]
	for _, n := range names {
		m.enabled = append(m.enabled, m.tracks[n])
	}

	groups, err := m.buildGroups(m.enabled)
	if err != nil {
		fatalf("mixer: %v", err)
	}
	m.groups = groups

	m.state = stateRanOnce
}

// demote is validate's second pass (spec.md §4.5 point 4): it runs after
// one process cycle has completed with the hooks validate chose, giving
// any in-flight ramp-to-zero a chance to finish, then reclassifies tracks
// that only just became mute-and-steady and collapses their hook to
// hookNop so steady-state silent tracks stop running their full mixing
// (or resampling) kernel every cycle thereafter.
func (m *Mixer) demote() {
	for _, t := range m.enabled {
		if t.needs&needsMute != 0 {
			continue
		}
		if t.isVolumeMuted() && !t.needsRamp() {
			t.needs |= needsMute
			t.hook = hookNop
		}
	}
}

func selectTrackHook(t *Track) trackHook {
	switch {
	case t.needs&needsMute != 0:
		return hookNop
	case t.needs&needsResample != 0:
		return hookResample
	default:
		return hookNoResample
	}
}

// bufferKey returns an identity for a main-buffer slice so tracks sharing
// the same destination are grouped together and that destination is
// zeroed exactly once per cycle, mirroring the "group by mBufferUp" rule
// this module is modelled on. Reading the slice's backing pointer for
// identity comparison only, never dereferencing through it, is the one use
// of unsafe in this module.
func bufferKey(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// trackGroup is every enabled track sharing one destination main buffer
// for the current Process cycle.
type trackGroup struct {
	key          uintptr
	mainBuffer   []byte
	channelCount int
	format       MixFormat
	tracks       []*Track
}

func (m *Mixer) buildGroups(tracks []*Track) ([]*trackGroup, error) {
	index := make(map[uintptr]*trackGroup)
	var order []uintptr
	for _, t := range tracks {
		key := bufferKey(t.mainBuffer)
		g, ok := index[key]
		if !ok {
			g = &trackGroup{key: key, mainBuffer: t.mainBuffer, channelCount: t.mixerChannelCount, format: t.mixerFormat}
			index[key] = g
			order = append(order, key)
		} else if g.channelCount != t.mixerChannelCount || g.format != t.mixerFormat {
			fatalf("mixer: tracks sharing a main buffer disagree on mixer channel count or format")
		}
		g.tracks = append(g.tracks, t)
	}
	groups := make([]*trackGroup, len(order))
	for i, k := range order {
		groups[i] = index[k]
	}
	return groups, nil
}
