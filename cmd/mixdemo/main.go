// Command mixdemo mixes one or more audio files down to a single WAV file.
//
// Usage:
//
//	mixdemo <output.wav> <seconds> <input1> [input2 ...]
//
// Each input is decoded by the registered decoder matching its extension
// (.wav, .mp3, .ogg, .aiff/.aif), resampled to the mixer's output rate if
// needed, and mixed at equal gain for the requested duration.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audiomix/audio"
	"github.com/ik5/audiomix/formats/aiff"
	"github.com/ik5/audiomix/formats/mp3"
	"github.com/ik5/audiomix/formats/vorbis"
	wavformat "github.com/ik5/audiomix/formats/wav"
	"github.com/ik5/audiomix/mixer"
	"github.com/ik5/audiomix/resampler"
)

const outputRate = 44100
const blockFrames = 1024

func newRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wavformat.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

func decoderFor(registry *audio.Registry, path string) (audio.Decoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	dec, ok := registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("mixdemo: no decoder registered for extension %q", ext)
	}
	return dec, nil
}

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: mixdemo <output.wav> <seconds> <input1> [input2 ...]")
		os.Exit(1)
	}

	outPath := os.Args[1]
	seconds, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		fmt.Println("mixdemo: invalid duration:", err)
		os.Exit(1)
	}
	inputs := os.Args[3:]

	registry := newRegistry()
	m := mixer.New(outputRate)

	for i, path := range inputs {
		dec, err := decoderFor(registry, path)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		f, err := os.Open(path)
		if err != nil {
			fmt.Println("mixdemo:", err)
			os.Exit(1)
		}
		defer f.Close()

		src, err := dec.Decode(f)
		if err != nil {
			fmt.Println("mixdemo: decode", path, "failed:", err)
			os.Exit(1)
		}

		name := i + 1
		if err := m.Create(name, channelMaskFor(src.Channels()), mixer.FormatPCMFloat, 0); err != nil {
			fmt.Println("mixdemo:", err)
			os.Exit(1)
		}

		srcProvider := audio.NewSourceProvider(src)
		m.SetBufferProvider(name, srcProvider)
		m.SetParameter(name, mixer.TargetTrack, mixer.ParamMixerChannelMask, mixer.ChannelStereo)
		m.SetParameter(name, mixer.TargetVolume, mixer.ParamVolume0, float32(1)/float32(len(inputs)))
		m.SetParameter(name, mixer.TargetVolume, mixer.ParamVolume1, float32(1)/float32(len(inputs)))
		m.Enable(name)

		if src.SampleRate() != outputRate {
			quality := resampler.SelectQuality(src.SampleRate())
			r := resampler.NewCubic(mixer.FormatPCMFloat, src.Channels(), src.SampleRate(), outputRate, quality)
			m.SetResampler(name, r)
			m.SetParameter(name, mixer.TargetResample, mixer.ParamSampleRate, src.SampleRate())
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Println("mixdemo:", err)
		os.Exit(1)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, outputRate, 16, 2, 1)
	defer enc.Close()

	totalFrames := int(seconds * float64(outputRate))
	mixBuf := make([]byte, blockFrames*2*4)
	intBuf := &goaudio.IntBuffer{
		Data:           make([]int, blockFrames*2),
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: outputRate},
		SourceBitDepth: 16,
	}

	for frame := 0; frame < totalFrames; frame += blockFrames {
		n := blockFrames
		if frame+n > totalFrames {
			n = totalFrames - frame
		}

		for i := 1; i <= len(inputs); i++ {
			m.SetParameter(i, mixer.TargetTrack, mixer.ParamMainBuffer, mixBuf[:n*2*4])
		}
		if err := m.Process(n); err != nil {
			fmt.Println("mixdemo: process failed:", err)
			os.Exit(1)
		}

		intBuf.Data = intBuf.Data[:n*2]
		for i := 0; i < n*2; i++ {
			off := i * 4
			bits := uint32(mixBuf[off]) | uint32(mixBuf[off+1])<<8 | uint32(mixBuf[off+2])<<16 | uint32(mixBuf[off+3])<<24
			v := int32(float32fromBits(bits) * 32767)
			intBuf.Data[i] = int(v)
		}

		if err := enc.Write(intBuf); err != nil {
			fmt.Println("mixdemo: write failed:", err)
			os.Exit(1)
		}
	}
}

func channelMaskFor(channels int) mixer.ChannelMask {
	if channels >= 2 {
		return mixer.ChannelStereo
	}
	return mixer.ChannelMono
}

func float32fromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}
