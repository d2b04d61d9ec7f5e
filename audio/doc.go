// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio processing primitives and the
// decoder/source layer the rest of this module builds on.
//
// This package contains the core audio processing building blocks:
//   - Source interface for audio input
//   - Format registry for decoder registration
//   - SourceProvider, which adapts a Source directly into a
//     mixer.BufferProvider so a decoded stream can drive a mixer.Track
//     without any further adapter package in between
//
// Sample rate conversion and channel mixing live in the resampler
// subpackage and the top-level audiomix.ResampleToMono16 convenience
// function, both built on the same mixer.BufferProvider/mixer.Resampler
// contracts a Mixer track uses, rather than as separate types here.
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All audio decoders and processors implement this interface, allowing
// them to be chained together in processing pipelines.
//
// # Resampling And Mono Conversion
//
// To resample and collect mono 16-bit PCM in one call, use the top-level
// audiomix package:
//
//	pcm16, rate, err := audiomix.ResampleToMono16(source, 16000, 4096)
//
// This drives a resampler.Cubic (cubic interpolation, both up- and
// downsampling) through the source wrapped in a SourceProvider, forcing
// the resampler's output channel count to 1 so its own gain/channel
// fan-out collapses straight to mono. Mono audio is often required for
// voice processing applications.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// This is useful for applications that need to support multiple formats.
//
// # Driving a mixer.Track
//
// SourceProvider turns any Source into the pull contract mixer.Track
// expects, re-encoding each chunk as PCM float so a track created with
// mixer.FormatPCMFloat can consume it without the mixer package knowing
// anything about codecs:
//
//	src, _ := decoder.Decode(r)
//	m.SetBufferProvider(trackName, audio.NewSourceProvider(src))
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to process audio without worrying
// about bit depths and ensures no clipping during intermediate processing.
//
// # Performance Considerations
//
// The audio processing functions are optimized for performance:
//   - Minimal allocations (often zero after warmup)
//   - Efficient buffer management
//   - SIMD-friendly algorithms where possible
//
// For best performance:
//   - Reuse buffers when possible
//   - Use appropriate buffer sizes (4096 is a good default)
//   - Process audio in streaming fashion rather than loading all in memory
//
// # Error Handling
//
// Audio processing functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
