// SPDX-License-Identifier: EPL-2.0

// Package audiomix provides a soft real-time multi-track PCM audio mixer
// for Go applications, together with the format decoders and resampling
// utilities needed to feed it.
//
// # Mixing
//
// The mixer subpackage is the core engine: create a mixer.Mixer at a fixed
// output rate, add tracks with mixer.Create, attach each track's
// mixer.BufferProvider and gain, then call mixer.Process once per output
// block.
//
//	m := mixer.New(44100)
//	m.Create(trackName, mixer.ChannelStereo, mixer.FormatPCM16, 0)
//	m.SetBufferProvider(trackName, provider)
//	m.SetParameter(trackName, mixer.TargetTrack, mixer.ParamMainBuffer, out)
//	m.SetParameter(trackName, mixer.TargetVolume, mixer.ParamVolume0, float32(1))
//	m.SetParameter(trackName, mixer.TargetVolume, mixer.ParamVolume1, float32(1))
//	m.Enable(trackName)
//	m.Process(frameCount)
//
// # Supported Formats
//
// The package supports decoding the following audio formats into the
// audio.Source interface, which audio.NewSourceProvider adapts into a
// mixer.BufferProvider:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Resampling
//
// The resampler subpackage implements mixer.Resampler with cubic
// interpolation. Once that package is imported, a track whose SAMPLE_RATE
// parameter is set to a rate other than the mixer's output rate gets a
// resampler.Cubic created automatically (through mixer.NewResampler);
// Mixer.SetResampler attaches one explicitly.
//
// # Format Conversion Convenience
//
// ResampleToMono16 drives that same resampler.Cubic/mixer.BufferProvider
// pair directly (forcing its output channel count to 1) for one-shot
// conversion of a decoded audio.Source to mono 16-bit PCM at a target
// rate, independent of any Mixer.
//
// See the individual subpackages for more detailed documentation.
package audiomix
