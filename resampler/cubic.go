package resampler

import (
	"math"

	"github.com/ik5/audiomix/mixer"
	"github.com/ik5/audiomix/mixer/fixedpoint"
	"github.com/ik5/audiomix/utils"
)

// Quality distinguishes the interpolation kernel picked for music-rate
// tracks from the cheaper one picked for low (e.g. telephony) rates.
// This build uses the same Catmull-Rom kernel for both; Quality is kept
// so callers and tests can express the selection rule even though the two
// qualities do not yet diverge in cost or kernel choice.
type Quality int

const (
	QualityDefault Quality = iota
	QualityLow
)

// IsMusicRate reports whether rate is high enough to be treated as a music
// sample rate rather than a low telephony-style rate.
func IsMusicRate(rate int) bool {
	return rate >= 8000
}

// SelectQuality picks the Quality a Cubic should be constructed with from
// a track's sample rate at the moment it starts resampling. Because
// quality is fixed at construction, a track whose rate later crosses the
// music-rate threshold keeps the quality chosen here.
func SelectQuality(initialRate int) Quality {
	if IsMusicRate(initialRate) {
		return QualityDefault
	}
	return QualityLow
}

// Cubic is a mixer.Resampler built on 4-tap Catmull-Rom interpolation over
// a small ring buffer of decoded input frames.
type Cubic struct {
	format   mixer.Format
	channels int
	quality  Quality

	srcRate float64
	dstRate float64
	ratio   float64
	pos     float64

	volL, volR float32

	frames   [4][]float32
	hasFrame [4]bool
	eof      bool

	rawFrame []byte
}

// init registers Cubic as the mixer package's resampler factory, so a
// track whose SAMPLE_RATE diverges from the device rate gets one created
// automatically (see mixer.NewResampler) as soon as this package is
// imported anywhere in the program, without the mixer core ever importing
// a concrete resampling algorithm.
func init() {
	mixer.NewResampler = func(format mixer.Format, channels, srcRate, dstRate int) mixer.Resampler {
		return NewCubic(format, channels, srcRate, dstRate, SelectQuality(srcRate))
	}
}

// NewCubic constructs a resampler converting format/channels input at
// srcRate to dstRate.
func NewCubic(format mixer.Format, channels int, srcRate, dstRate int, quality Quality) *Cubic {
	c := &Cubic{
		format:   format,
		channels: channels,
		quality:  quality,
		srcRate:  float64(srcRate),
		dstRate:  float64(dstRate),
		ratio:    float64(srcRate) / float64(dstRate),
		volL:     1,
		volR:     1,
		rawFrame: make([]byte, fixedpoint.BytesPerSample(format)*channels),
	}
	for i := range c.frames {
		c.frames[i] = make([]float32, channels)
	}
	return c
}

func (c *Cubic) SetSampleRate(rate int) {
	c.srcRate = float64(rate)
	c.ratio = c.srcRate / c.dstRate
}

// SetVolume sets the constant per-channel gain Resample fuses into its own
// multiply-add. The mixer kernel calls this with (1, 1) whenever a ramp or
// aux send is in flight (so gain is instead applied per-frame after
// Resample returns) and with the real committed gain otherwise, the
// no-ramp/no-aux fast path described in SPEC_FULL.md §6.6.
func (c *Cubic) SetVolume(left, right float32) {
	c.volL, c.volR = left, right
}

func (c *Cubic) Reset() {
	c.pos = 0
	c.eof = false
	for i := range c.hasFrame {
		c.hasFrame[i] = false
	}
}

func (c *Cubic) UnreleasedFrames() int {
	n := 0
	for _, has := range c.hasFrame {
		if has {
			n++
		}
	}
	return n
}

func (c *Cubic) pullInputFrame(provider mixer.BufferProvider) (bool, error) {
	if c.eof {
		return false, nil
	}
	buf := mixer.Buffer{FrameCount: 1}
	if err := provider.GetNextBuffer(&buf); err != nil {
		return false, err
	}
	if buf.Raw == nil || buf.FrameCount == 0 {
		return false, nil
	}
	copy(c.rawFrame, buf.Raw[:len(c.rawFrame)])
	released := buf
	released.FrameCount = 1
	provider.ReleaseBuffer(&released)
	return true, nil
}

func (c *Cubic) decodeInto(slot int) {
	bps := fixedpoint.BytesPerSample(c.format)
	for ch := 0; ch < c.channels; ch++ {
		c.frames[slot][ch] = fixedpoint.ReadSample(c.format, c.rawFrame[ch*bps:(ch+1)*bps])
	}
}

func (c *Cubic) fetchNextFrame(provider mixer.BufferProvider) error {
	copy(c.frames[0], c.frames[1])
	copy(c.frames[1], c.frames[2])
	copy(c.frames[2], c.frames[3])
	c.hasFrame[0] = c.hasFrame[1]
	c.hasFrame[1] = c.hasFrame[2]
	c.hasFrame[2] = c.hasFrame[3]

	ok, err := c.pullInputFrame(provider)
	if err != nil {
		return err
	}
	if ok {
		c.decodeInto(3)
		c.hasFrame[3] = true
	} else {
		c.hasFrame[3] = false
		c.eof = true
	}
	return nil
}

func (c *Cubic) channelSample(ch int, alpha float32) float32 {
	var y0, y1, y2, y3 float32
	if c.hasFrame[0] {
		y0 = c.frames[0][ch]
	} else {
		y0 = c.frames[1][ch]
	}
	y1 = c.frames[1][ch]
	y2 = c.frames[2][ch]
	if c.hasFrame[3] {
		y3 = c.frames[3][ch]
	} else {
		y3 = c.frames[2][ch]
	}
	return utils.CubicInterpolate(y0, y1, y2, y3, alpha)
}

// Resample writes frameCount (or fewer, at end-of-stream) output frames
// into dst, float32-bit-reinterpreted per sample, at outCh := len(dst) /
// frameCount channels.
func (c *Cubic) Resample(dst []int32, frameCount int, provider mixer.BufferProvider) (int, error) {
	if frameCount == 0 {
		return 0, nil
	}
	outCh := len(dst) / frameCount

	if !c.hasFrame[1] {
		c.hasFrame[0] = false
		for i := 1; i < 4; i++ {
			ok, err := c.pullInputFrame(provider)
			if err != nil {
				return 0, err
			}
			if !ok {
				if i == 1 {
					return 0, nil
				}
				for j := i; j < 4; j++ {
					c.hasFrame[j] = false
				}
				c.eof = true
				break
			}
			c.decodeInto(i)
			c.hasFrame[i] = true
		}
	}

	written := 0
	for written < frameCount {
		for c.pos >= 1.0 {
			c.pos -= 1.0
			if err := c.fetchNextFrame(provider); err != nil {
				return written, err
			}
		}
		if !c.hasFrame[1] {
			return written, nil
		}
		if !c.hasFrame[2] {
			// Past end-of-stream: duplicate the last valid frame.
			copy(c.frames[2], c.frames[1])
		}

		alpha := float32(c.pos)
		l := c.channelSample(0, alpha)
		r := l
		if c.channels >= 2 {
			r = c.channelSample(1, alpha)
		}
		gl, gr := l*c.volL, r*c.volR

		base := written * outCh
		switch outCh {
		case 1:
			dst[base] = int32(math.Float32bits((gl + gr) * 0.5))
		default:
			dst[base] = int32(math.Float32bits(gl))
			dst[base+1] = int32(math.Float32bits(gr))
			for ch := 2; ch < outCh; ch++ {
				dst[base+ch] = int32(math.Float32bits((gl + gr) * 0.5))
			}
		}

		written++
		c.pos += c.ratio
	}

	return written, nil
}
