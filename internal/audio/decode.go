// ABOUTME: Decodes uploaded audio containers to a normalized 16 kHz mono waveform
// ABOUTME: Shells out to ffmpeg for container demux, then normalizes PCM to [-1, 1]
package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os/exec"
	"strings"

	"github.com/learnrise/learnrise/internal/errdefs"
)

// TargetSampleRate is the sample rate the speech model expects
const TargetSampleRate = 16000

// Waveform is decoded single-channel audio with samples in [-1, 1]
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// SampleCount returns the number of samples
func (w Waveform) SampleCount() int {
	return len(w.Samples)
}

// Duration returns the waveform length in seconds
func (w Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Decoder converts compressed audio containers into waveforms
type Decoder struct {
	ffmpegPath string
}

// NewDecoder creates a Decoder using the given ffmpeg binary
func NewDecoder(ffmpegPath string) *Decoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Decoder{ffmpegPath: ffmpegPath}
}

// Decode demuxes and resamples the container to 16 kHz mono 16-bit PCM,
// then normalizes the samples. Fails with AUDIO_DECODE_FAILED on malformed
// or unsupported input.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (Waveform, error) {
	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = r
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return Waveform{}, errdefs.Wrap(err, errdefs.CodeAudioDecodeFailed,
			"ffmpeg decode failed: "+detail)
	}

	wf := DecodePCM(stdout.Bytes())
	if wf.SampleCount() == 0 {
		return Waveform{}, errdefs.New(errdefs.CodeAudioDecodeFailed, "decoded audio is empty")
	}
	return wf, nil
}

// DecodePCM converts little-endian 16-bit mono PCM bytes into a normalized waveform
func DecodePCM(pcm []byte) Waveform {
	n := len(pcm) / 2
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float64(v) / 32768.0
	}
	return Waveform{Samples: samples, SampleRate: TargetSampleRate}
}
