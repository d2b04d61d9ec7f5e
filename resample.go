// SPDX-License-Identifier: EPL-2.0

package audiomix

import (
	"errors"
	"io"
	"math"

	"github.com/ik5/audiomix/audio"
	"github.com/ik5/audiomix/mixer"
	"github.com/ik5/audiomix/resampler"
	"github.com/ik5/audiomix/utils"
)

// ResampleToMono16 is a high-level convenience function that resamples audio to a target
// sample rate, converts it to mono, and collects all samples as 16-bit PCM data.
//
// It is built on the same pull contracts a Mixer track uses rather than a
// separate pipeline: src is wrapped in an audio.SourceProvider (a
// mixer.BufferProvider) and driven through a resampler.Cubic exactly as
// Mixer.Process drives a resampling track, just with the output channel
// count forced to 1 so the resampler's own gain/channel fan-out collapses
// straight to mono (see resampler.Cubic.Resample's outCh == 1 case).
//
// Parameters:
//   - src: The audio source to process (implements audio.Source)
//   - targetRate: Target sample rate in Hz (e.g., 8000, 16000, 44100, 48000)
//   - bufferSize: Frames pulled from the resampler per internal iteration
//                 (e.g., 4096). Larger buffers make fewer, larger calls.
//
// Returns:
//   - []int16: Collected PCM samples as 16-bit signed integers
//   - int: The output sample rate (same as targetRate)
//   - error: Any error encountered during processing
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := audiomix.ResampleToMono16(src, 8000, 4096)
//	if err != nil {
//	    panic(err)
//	}
//	// pcm16 now contains mono 16-bit PCM at 8kHz
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	provider := audio.NewSourceProvider(src)
	cubic := resampler.NewCubic(mixer.FormatPCMFloat, src.Channels(), src.SampleRate(), targetRate, resampler.SelectQuality(src.SampleRate()))

	temp := make([]int32, bufferSize)

	estimatedSamples := targetRate * 2
	pcm16 := make([]int16, 0, estimatedSamples)

	for {
		produced, err := cubic.Resample(temp, bufferSize, provider)
		if produced > 0 {
			if cap(pcm16)-len(pcm16) < produced {
				newCap := len(pcm16) + max(produced, cap(pcm16))
				newSlice := make([]int16, len(pcm16), newCap)
				copy(newSlice, pcm16)
				pcm16 = newSlice
			}
			startIdx := len(pcm16)
			pcm16 = pcm16[:startIdx+produced]
			for i := 0; i < produced; i++ {
				mono := math.Float32frombits(uint32(temp[i]))
				pcm16[startIdx+i] = utils.Float32ToInt16(mono)
			}
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return nil, targetRate, err
		}
		if produced == 0 {
			break
		}
	}

	return pcm16, targetRate, nil
}
