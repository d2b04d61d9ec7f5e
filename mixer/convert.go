package mixer

import "github.com/ik5/audiomix/mixer/fixedpoint"

// writeOutput converts the first n samples of the float accumulator acc
// into dst, encoded per format. dst must be large enough for n samples of
// that format (2 bytes/sample for MixInt16, 4 for MixFloat); values
// outside [-1, 1] from additive mixing saturate rather than wrap.
func writeOutput(format MixFormat, acc []float32, dst []byte, n int) {
	switch format {
	case MixInt16:
		for i := 0; i < n; i++ {
			fixedpoint.WriteSample(fixedpoint.PCM16, acc[i], dst[i*2:i*2+2])
		}
	case MixFloat:
		for i := 0; i < n; i++ {
			fixedpoint.WriteSample(fixedpoint.PCMFloat, acc[i], dst[i*4:i*4+4])
		}
	default:
		fatalf("mixer: unknown mixer output format %v", format)
	}
}
