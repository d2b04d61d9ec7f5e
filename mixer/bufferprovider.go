package mixer

// Buffer is the unit of exchange between a Mixer and a track's
// BufferProvider. The caller sets FrameCount to the desired maximum before
// calling GetNextBuffer; on return, Raw points at that many frames (encoded
// per the track's input Format) or is nil if the provider has no data right
// now.
type Buffer struct {
	Raw        []byte
	FrameCount int
}

// BufferProvider is the pull contract a track's PCM source implements. A
// process cycle may issue several GetNextBuffer/ReleaseBuffer pairs per
// track to fulfil one output block. GetNextBuffer returning a nil Raw is
// not an error: it means the provider has nothing available right now (for
// example a concurrent flush), and the mixer treats the track as silent for
// the remainder of the current block without corrupting the accumulator.
type BufferProvider interface {
	// GetNextBuffer fills buf.Raw with up to buf.FrameCount frames, updating
	// buf.FrameCount to the number actually available. buf.Raw is nil if no
	// data is available right now.
	GetNextBuffer(buf *Buffer) error

	// ReleaseBuffer tells the provider the mixer is done with the frames it
	// actually consumed from the last GetNextBuffer call (buf.FrameCount may
	// be less than what GetNextBuffer returned, for a partial consume).
	ReleaseBuffer(buf *Buffer)
}
