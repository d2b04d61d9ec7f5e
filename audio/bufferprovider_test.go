package audio

import (
	"math"
	"testing"

	"github.com/ik5/audiomix/internal/audiotest"
	"github.com/ik5/audiomix/mixer"
)

func TestSourceProviderDeliversConstantValue(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 512, 0.25)
	p := NewSourceProvider(src)

	if p.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", p.SampleRate())
	}
	if p.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", p.Channels())
	}

	buf := mixer.Buffer{FrameCount: 64}
	if err := p.GetNextBuffer(&buf); err != nil {
		t.Fatalf("GetNextBuffer() error = %v", err)
	}
	if buf.Raw == nil || buf.FrameCount == 0 {
		t.Fatal("GetNextBuffer() returned no data")
	}

	bits := uint32(buf.Raw[0]) | uint32(buf.Raw[1])<<8 | uint32(buf.Raw[2])<<16 | uint32(buf.Raw[3])<<24
	got := math.Float32frombits(bits)
	if math.Abs(float64(got-0.25)) > 1e-6 {
		t.Errorf("first decoded sample = %v, want 0.25", got)
	}
}

func TestSourceProviderReportsSilenceAtEOF(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 4)
	p := NewSourceProvider(src)

	buf := mixer.Buffer{FrameCount: 4}
	if err := p.GetNextBuffer(&buf); err != nil {
		t.Fatalf("GetNextBuffer() error = %v", err)
	}
	if buf.FrameCount != 4 {
		t.Fatalf("first GetNextBuffer() FrameCount = %d, want 4", buf.FrameCount)
	}

	buf = mixer.Buffer{FrameCount: 4}
	if err := p.GetNextBuffer(&buf); err != nil {
		t.Fatalf("GetNextBuffer() error = %v", err)
	}
	if buf.Raw != nil {
		t.Errorf("GetNextBuffer() after exhaustion returned non-nil Raw")
	}
}
