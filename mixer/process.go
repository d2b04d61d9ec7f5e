package mixer

// Process mixes frameCount frames for every enabled track into its
// configured main (and aux) buffers. It runs validate first if the mixer
// state is Invalidated, matching process__validate's hook-selection pass,
// then dispatches either the legacy single-track fixed-point fast path or
// the generic grouped float path. If this is the first cycle to run since
// validate (state RanOnce), it finishes by running demote, the second
// pass that reclassifies tracks which only just went silent.
func (m *Mixer) Process(frameCount int) error {
	if m.state == stateInvalidated {
		m.validate()
	}
	m.lastFrameCount = frameCount

	if m.PreProcess != nil {
		m.PreProcess(m)
	}

	if len(m.enabled) == 0 {
		m.state = stateSteady
		return nil
	}

	var err error
	if legacyFastPathEligible(m.enabled, m.sampleRate) {
		err = processLegacyOneTrack(m.enabled[0], frameCount)
	} else {
		err = m.processGeneric(frameCount)
	}
	if err != nil {
		return err
	}

	if m.PostProcess != nil {
		m.PostProcess(m)
	}
	if m.state == stateRanOnce {
		m.demote()
	}
	m.state = stateSteady
	return nil
}

func (m *Mixer) processGeneric(frameCount int) error {
	groups := m.groups

	if cap(m.resampleTemp) < frameCount*FCCLimit {
		m.resampleTemp = make([]int32, frameCount*FCCLimit)
	}
	temp := m.resampleTemp[:frameCount*FCCLimit]

	for _, g := range groups {
		acc := m.reuseAccum(m.groupAccum, g.key, frameCount*g.channelCount)

		var aux []float32
		needsAuxZero := false
		for _, t := range g.tracks {
			if t.auxBuffer != nil {
				needsAuxZero = true
			}
		}
		if needsAuxZero {
			aux = m.reuseAccum(m.groupAux, g.key, frameCount)
		}

		for _, t := range g.tracks {
			adjustVolumeRamp(t, t.auxBuffer != nil)
			var trackAux []float32
			if t.auxBuffer != nil {
				trackAux = aux
			}
			if err := t.hook(t, acc, frameCount, temp, trackAux); err != nil {
				return err
			}
		}

		writeOutput(g.format, acc, g.mainBuffer, frameCount*g.channelCount)
		if needsAuxZero {
			for _, t := range g.tracks {
				if t.auxBuffer != nil {
					copy(t.auxBuffer[:frameCount], aux)
				}
			}
		}
	}
	return nil
}

// reuseAccum returns a zeroed float32 slice of length n, reusing the slice
// cached under key when its capacity is sufficient so steady-state
// operation performs no further allocation.
func (m *Mixer) reuseAccum(cache map[uintptr][]float32, key uintptr, n int) []float32 {
	buf, ok := cache[key]
	if !ok || cap(buf) < n {
		buf = make([]float32, n)
		cache[key] = buf
		return buf
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}
