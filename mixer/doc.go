// SPDX-License-Identifier: EPL-2.0

// Package mixer implements a soft real-time multi-track PCM mixer: N
// independently configured tracks, optional per-track sample-rate
// conversion to a common device rate, per-channel gain with optional linear
// ramping and an auxiliary send, accumulation into one or more caller-owned
// output buffers at a fixed frame cadence, and conversion to the requested
// output sample format.
//
// # Control plane and process cycle
//
// A Mixer is constructed once with its device sample rate only; the output
// block size is not fixed at construction but passed to each Process call,
// so it can differ from one call to the next. Tracks are created, configured via SetParameter, enabled and
// destroyed at any time; Process drives exactly one output block. The
// caller is responsible for serializing control calls and Process against
// each other — Mixer does no internal locking.
//
// # Hot path
//
// After the first Process call following any configuration change, no
// further allocation occurs inside Process: scratch accumulators are sized
// once, grouped tracks share one zeroed accumulator per cycle, and the
// per-track mixing kernel is selected ahead of time by a validate pass
// rather than dispatched dynamically on every sample.
//
// # Collaborators
//
// Mixer depends only on the abstract BufferProvider and Resampler
// contracts in this package — concrete implementations (a default
// cubic-interpolation resampler, adapters from decoded audio files to the
// buffer-provider pull protocol) live in sibling packages so the core
// engine never imports a decoder or a specific resampling algorithm.
package mixer
