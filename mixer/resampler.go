package mixer

// Resampler is the abstract sample-rate converter contract a track drives.
// The mixer core depends only on this interface; the concrete
// cubic-interpolation implementation this module ships lives in the
// sibling resampler package so the core never imports a specific algorithm.
//
// Quality is selected once, at creation time, from the track's initial
// sample rate (see SPEC_FULL.md §6.2); a Resampler does not need to expose
// a way to change quality later, matching the documented limitation that
// dynamic-rate tracks keep their initial quality.
type Resampler interface {
	// SetSampleRate updates the source rate being converted to the device
	// rate fixed at construction.
	SetSampleRate(rate int)

	// SetVolume sets the per-channel float gain applied while resampling,
	// used only by the constant-gain single-track fast path inside the
	// resample kernel (SPEC_FULL.md §6.6).
	SetVolume(left, right float32)

	// Resample accumulates frameCount output frames into dst (Q4.27 or
	// reinterpreted float depending on the track's mixer-internal format),
	// pulling input from provider as needed. It returns the number of
	// frames actually produced, which may be less than frameCount at
	// end-of-stream.
	Resample(dst []int32, frameCount int, provider BufferProvider) (int, error)

	// Reset flushes internal interpolation state without changing rate.
	Reset()

	// UnreleasedFrames reports frames the resampler has consumed from its
	// provider but not yet emitted to a Resample call.
	UnreleasedFrames() int
}

// NewResampler builds a Resampler for format/channels input converting
// srcRate to dstRate. The mixer core has no concrete Resampler
// implementation of its own; the sibling resampler package sets this
// variable from its own init, so the first call that actually needs a
// resampler (a track's SAMPLE_RATE diverging from the device rate without
// one already attached via SetResampler) only works once that package has
// been imported somewhere in the program, breaking what would otherwise be
// an import cycle (resampler depends on mixer for this very interface).
var NewResampler func(format Format, channels, srcRate, dstRate int) Resampler
