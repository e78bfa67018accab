// ABOUTME: Tests for waveform decoding, WAV encoding, and the transcription adapter
// ABOUTME: PCM tests run without ffmpeg; the transcriber talks to an httptest server
package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/learnrise/learnrise/internal/errdefs"
)

func TestDecodePCM_Silence(t *testing.T) {
	// One second of 16 kHz 16-bit silence
	pcm := make([]byte, TargetSampleRate*2)

	wf := DecodePCM(pcm)
	if wf.SampleCount() != TargetSampleRate {
		t.Fatalf("SampleCount() = %d, want %d", wf.SampleCount(), TargetSampleRate)
	}
	if wf.Duration() != 1.0 {
		t.Errorf("Duration() = %f, want 1.0", wf.Duration())
	}
	for i, s := range wf.Samples {
		if s != 0 {
			t.Fatalf("sample %d = %f, want 0", i, s)
		}
	}
}

func TestDecodePCM_Normalization(t *testing.T) {
	pcm := make([]byte, 6)
	maxSample, minSample, midSample := int16(32767), int16(-32768), int16(16384)
	binary.LittleEndian.PutUint16(pcm[0:2], uint16(maxSample))
	binary.LittleEndian.PutUint16(pcm[2:4], uint16(minSample))
	binary.LittleEndian.PutUint16(pcm[4:6], uint16(midSample))

	wf := DecodePCM(pcm)
	if wf.SampleCount() != 3 {
		t.Fatalf("SampleCount() = %d, want 3", wf.SampleCount())
	}
	if wf.Samples[0] <= 0.999 || wf.Samples[0] > 1.0 {
		t.Errorf("max sample = %f, want just under 1.0", wf.Samples[0])
	}
	if wf.Samples[1] != -1.0 {
		t.Errorf("min sample = %f, want -1.0", wf.Samples[1])
	}
	if wf.Samples[2] != 0.5 {
		t.Errorf("mid sample = %f, want 0.5", wf.Samples[2])
	}
}

func TestWAV_RoundTrip(t *testing.T) {
	original := Waveform{
		Samples:    []float64{0, 0.5, -0.5, 0.25},
		SampleRate: TargetSampleRate,
	}

	wav := original.WAV()
	if len(wav) != 44+len(original.Samples)*2 {
		t.Fatalf("WAV length = %d, want %d", len(wav), 44+len(original.Samples)*2)
	}
	if !bytes.HasPrefix(wav, []byte("RIFF")) || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE header")
	}

	sampleRate := binary.LittleEndian.Uint32(wav[24:28])
	if sampleRate != TargetSampleRate {
		t.Errorf("header sample rate = %d, want %d", sampleRate, TargetSampleRate)
	}

	// Decoding the data chunk reproduces the samples
	decoded := DecodePCM(wav[44:])
	if decoded.SampleCount() != original.SampleCount() {
		t.Fatalf("round-trip sample count = %d, want %d", decoded.SampleCount(), original.SampleCount())
	}
	for i := range original.Samples {
		diff := decoded.Samples[i] - original.Samples[i]
		if diff > 1.0/32768 || diff < -1.0/32768 {
			t.Errorf("sample %d: %f vs %f", i, decoded.Samples[i], original.Samples[i])
		}
	}
}

func TestWAV_SilenceRoundTrip(t *testing.T) {
	silence := DecodePCM(make([]byte, TargetSampleRate*2))
	decoded := DecodePCM(silence.WAV()[44:])

	if decoded.SampleCount() != TargetSampleRate {
		t.Fatalf("round-trip sample count = %d, want %d", decoded.SampleCount(), TargetSampleRate)
	}
	for i, s := range decoded.Samples {
		if s != 0 {
			t.Fatalf("sample %d = %f, want 0", i, s)
		}
	}
}

func TestTranscribe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"  hello from whisper  "}`))
	}))
	defer server.Close()

	tr := NewTranscriber(TranscriberConfig{
		BaseURL: server.URL + "/v1",
		APIKey:  "test",
		Timeout: 5 * time.Second,
	})

	wf := Waveform{Samples: []float64{0, 0.1, -0.1}, SampleRate: TargetSampleRate}
	text, err := tr.Transcribe(context.Background(), wf)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello from whisper" {
		t.Errorf("Transcribe() = %q", text)
	}
}

func TestTranscribe_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	tr := NewTranscriber(TranscriberConfig{
		BaseURL:    server.URL + "/v1",
		APIKey:     "test",
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		Timeout:    5 * time.Second,
	})

	wf := Waveform{Samples: []float64{0.1}, SampleRate: TargetSampleRate}
	_, err := tr.Transcribe(context.Background(), wf)
	if !errdefs.Is(err, errdefs.CodeTranscriptionFailed) {
		t.Errorf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
}

func TestTranscribe_EmptyWaveform(t *testing.T) {
	tr := NewTranscriber(TranscriberConfig{BaseURL: "http://unused", APIKey: "x"})

	_, err := tr.Transcribe(context.Background(), Waveform{})
	if !errdefs.Is(err, errdefs.CodeMalformedInput) {
		t.Errorf("expected MALFORMED_INPUT, got %v", err)
	}
}

func TestDecoder_MalformedInput(t *testing.T) {
	// Requires ffmpeg on PATH; skip when absent
	d := NewDecoder("")
	_, err := d.Decode(context.Background(), bytes.NewReader([]byte("not audio")))
	if err == nil {
		t.Skip("ffmpeg accepted garbage or is unavailable")
	}
	if !errdefs.Is(err, errdefs.CodeAudioDecodeFailed) {
		t.Errorf("expected AUDIO_DECODE_FAILED, got %v", err)
	}
}
