// ABOUTME: Minimal WAV encoding of a waveform for the speech endpoint
// ABOUTME: Writes a 16-bit PCM RIFF container around the normalized samples
package audio

import (
	"bytes"
	"encoding/binary"
)

// WAV encodes the waveform as a 16-bit PCM mono WAV file
func (w Waveform) WAV() []byte {
	dataLen := len(w.Samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataLen))

	sampleRate := w.SampleRate
	if sampleRate == 0 {
		sampleRate = TargetSampleRate
	}

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	// fmt chunk: PCM, mono, 16-bit
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	for _, s := range w.Samples {
		v := s * 32768.0
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		binary.Write(buf, binary.LittleEndian, int16(v))
	}

	return buf.Bytes()
}
