package audio

import (
	"errors"
	"io"

	"github.com/ik5/audiomix/mixer"
	"github.com/ik5/audiomix/mixer/fixedpoint"
)

// SourceProvider adapts a Source into a mixer.BufferProvider, pulling
// fixed-size chunks from the source and re-encoding them as PCM float
// bytes on each GetNextBuffer call, so a decoder's output can drive a
// mixer.Track directly without an intermediate adapter package. A source
// returning 0 samples with io.EOF is reported as "no data right now" rather
// than an error, so a track fed by a SourceProvider goes silent at
// end-of-stream instead of failing the mixer's Process call. A non-EOF read
// error is returned from that GetNextBuffer call, kept for Err, and every
// later call reports "no data right now".
type SourceProvider struct {
	src      Source
	channels int
	frameCap int

	chunk []float32
	raw   []byte

	err error
}

// NewSourceProvider builds a SourceProvider over src, sizing its internal
// pull chunk from src.BufSize().
func NewSourceProvider(src Source) *SourceProvider {
	channels := src.Channels()
	if channels < 1 {
		channels = 1
	}
	frameCap := src.BufSize()
	if frameCap <= 0 {
		frameCap = 1024
	}
	return &SourceProvider{
		src:      src,
		channels: channels,
		frameCap: frameCap,
		chunk:    make([]float32, frameCap*channels),
		raw:      make([]byte, frameCap*channels*4),
	}
}

// SampleRate is the source's native rate.
func (p *SourceProvider) SampleRate() int { return p.src.SampleRate() }

// Channels is the source's channel count.
func (p *SourceProvider) Channels() int { return p.channels }

// Err returns the first non-EOF read error SourceProvider encountered, if
// any, after GetNextBuffer has started reporting silence.
func (p *SourceProvider) Err() error { return p.err }

// Close releases the underlying source.
func (p *SourceProvider) Close() error { return p.src.Close() }

func (p *SourceProvider) GetNextBuffer(buf *mixer.Buffer) error {
	if p.err != nil {
		buf.Raw = nil
		buf.FrameCount = 0
		return nil
	}

	want := buf.FrameCount
	if want <= 0 || want > p.frameCap {
		want = p.frameCap
	}

	n, err := p.src.ReadSamples(p.chunk[:want*p.channels])
	if err != nil && !errors.Is(err, io.EOF) {
		p.err = err
		return err
	}
	if n == 0 {
		buf.Raw = nil
		buf.FrameCount = 0
		return nil
	}

	for i := 0; i < n; i++ {
		fixedpoint.WriteSample(fixedpoint.PCMFloat, p.chunk[i], p.raw[i*4:i*4+4])
	}
	frames := n / p.channels
	buf.Raw = p.raw[:frames*p.channels*4]
	buf.FrameCount = frames
	return nil
}

func (p *SourceProvider) ReleaseBuffer(buf *mixer.Buffer) {}
