// Package resampler implements mixer.Resampler with a 4-tap Catmull-Rom
// cubic interpolation kernel, adapted from the ring-buffer resampler this
// module's teacher shipped for its own Source-to-Source conversions.
//
// A Cubic instance is bound to one input PCM format and channel count for
// its lifetime; only the source sample rate can change afterwards via
// SetSampleRate. Quality is chosen once at construction (SelectQuality),
// matching the documented limitation that a track's resample quality does
// not adapt to later sample-rate changes.
package resampler
