package helpers

import (
	"bytes"
	"strings"
	"testing"
)

// mpeg1Frame is a single 128kbps 44.1kHz MPEG-1 Layer III frame: a valid
// header followed by a zeroed payload. Each frame carries 1152 samples,
// about 26.1ms of audio.
func mpeg1Frame() []byte {
	frame := make([]byte, 417)
	frame[0] = 0xFF
	frame[1] = 0xFB
	frame[2] = 0x90
	frame[3] = 0x00
	return frame
}

func mp3Stream(frames int) []byte {
	var buf bytes.Buffer
	f := mpeg1Frame()
	for i := 0; i < frames; i++ {
		buf.Write(f)
	}
	return buf.Bytes()
}

func TestAudioDuration(t *testing.T) {
	// 115 frames * 1152 samples / 44100 Hz = 3.004s
	d, err := AudioDuration(bytes.NewReader(mp3Stream(115)))
	if err != nil {
		t.Fatalf("AudioDuration: %v", err)
	}
	if d != 3 {
		t.Errorf("duration = %d, want 3", d)
	}
}

func TestAudioDurationRoundsDown(t *testing.T) {
	// A single frame is 26ms; it rounds to zero seconds.
	d, err := AudioDuration(bytes.NewReader(mp3Stream(1)))
	if err != nil {
		t.Fatalf("AudioDuration: %v", err)
	}
	if d != 0 {
		t.Errorf("duration = %d, want 0", d)
	}
}

func TestAudioDurationToleratesTrailingJunk(t *testing.T) {
	stream := append(mp3Stream(115), make([]byte, 100)...)
	d, err := AudioDuration(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("AudioDuration: %v", err)
	}
	if d != 3 {
		t.Errorf("duration = %d, want 3", d)
	}
}

func TestAudioDurationRejectsNonAudio(t *testing.T) {
	if _, err := AudioDuration(strings.NewReader("definitely not an mp3")); err == nil {
		t.Error("expected error for a stream with no audio frames")
	}
}
