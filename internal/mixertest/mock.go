// Package mixertest provides mixer.BufferProvider test doubles, mirroring
// the waveform-generator pattern internal/audiotest uses for audio.Source.
package mixertest

import (
	"math"

	"github.com/ik5/audiomix/mixer"
	"github.com/ik5/audiomix/mixer/fixedpoint"
)

// WaveformProvider generates PCM16 stereo (or mono) frames from a waveform
// function, one chunk per GetNextBuffer call, until totalFrames have been
// delivered.
type WaveformProvider struct {
	channels     int
	totalFrames  int
	generated    int
	released     int
	waveform     func(frame, channel int) float32
	buf          []byte
}

// NewWaveformProvider builds a provider generating totalFrames frames of
// channels channels from waveform, encoded as PCM16.
func NewWaveformProvider(channels, totalFrames int, waveform func(frame, channel int) float32) *WaveformProvider {
	return &WaveformProvider{
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentProvider generates totalFrames frames of silence.
func NewSilentProvider(channels, totalFrames int) *WaveformProvider {
	return NewWaveformProvider(channels, totalFrames, func(int, int) float32 { return 0 })
}

// NewConstantProvider generates totalFrames frames holding value on every
// channel.
func NewConstantProvider(channels, totalFrames int, value float32) *WaveformProvider {
	return NewWaveformProvider(channels, totalFrames, func(int, int) float32 { return value })
}

// NewSineProvider generates totalFrames frames of a sine wave at frequency
// Hz sampled at sampleRate.
func NewSineProvider(channels, totalFrames, sampleRate int, frequency float64) *WaveformProvider {
	return NewWaveformProvider(channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (w *WaveformProvider) GetNextBuffer(buf *mixer.Buffer) error {
	remaining := w.totalFrames - w.generated
	if remaining <= 0 {
		buf.Raw = nil
		buf.FrameCount = 0
		return nil
	}
	want := buf.FrameCount
	if want <= 0 || want > remaining {
		want = remaining
	}

	bytesPerFrame := 2 * w.channels
	if len(w.buf) < want*bytesPerFrame {
		w.buf = make([]byte, want*bytesPerFrame)
	}
	raw := w.buf[:want*bytesPerFrame]
	for f := 0; f < want; f++ {
		for ch := 0; ch < w.channels; ch++ {
			v := w.waveform(w.generated+f, ch)
			off := f*bytesPerFrame + ch*2
			fixedpoint.WriteSample(fixedpoint.PCM16, v, raw[off:off+2])
		}
	}

	w.generated += want
	buf.Raw = raw
	buf.FrameCount = want
	return nil
}

func (w *WaveformProvider) ReleaseBuffer(buf *mixer.Buffer) {
	w.released += buf.FrameCount
}

// Generated reports the total number of frames produced so far.
func (w *WaveformProvider) Generated() int { return w.generated }

// Released reports the total number of frames released so far.
func (w *WaveformProvider) Released() int { return w.released }

// NeverProvider always reports no data, for exercising a track that never
// produces input.
type NeverProvider struct{}

func (NeverProvider) GetNextBuffer(buf *mixer.Buffer) error {
	buf.Raw = nil
	buf.FrameCount = 0
	return nil
}

func (NeverProvider) ReleaseBuffer(*mixer.Buffer) {}
