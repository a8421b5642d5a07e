package assets

import (
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"
)

// pcmWAV builds a 16-bit stereo RIFF file with frames silent frames.
func pcmWAV(sampleRate, frames int) []byte {
	const channels, bits = 2, 16
	dataLen := frames * channels * bits / 8
	b := make([]byte, 44+dataLen)
	copy(b[0:], "RIFF")
	binary.LittleEndian.PutUint32(b[4:], uint32(36+dataLen))
	copy(b[8:], "WAVE")
	copy(b[12:], "fmt ")
	binary.LittleEndian.PutUint32(b[16:], 16)
	binary.LittleEndian.PutUint16(b[20:], 1)
	binary.LittleEndian.PutUint16(b[22:], channels)
	binary.LittleEndian.PutUint32(b[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(b[28:], uint32(sampleRate*channels*bits/8))
	binary.LittleEndian.PutUint16(b[32:], channels*bits/8)
	binary.LittleEndian.PutUint16(b[34:], bits)
	copy(b[36:], "data")
	binary.LittleEndian.PutUint32(b[40:], uint32(dataLen))
	return b
}

func TestDecodeClipWAV(t *testing.T) {
	cases := []struct {
		name   string
		frames int
		want   time.Duration
	}{
		{"one_second", SampleRate, time.Second},
		{"half_second", SampleRate / 2, 500 * time.Millisecond},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clip, err := DecodeClip("music/"+c.name+".wav", pcmWAV(SampleRate, c.frames), SampleRate)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if clip.Duration != c.want {
				t.Fatalf("expected %v, got %v", c.want, clip.Duration)
			}
			if len(clip.PCM) != c.frames*bytesPerFrame {
				t.Fatalf("expected %d bytes, got %d", c.frames*bytesPerFrame, len(clip.PCM))
			}
		})
	}
}

func TestDecodeClipUnsupported(t *testing.T) {
	if _, err := DecodeClip("music/theme.flac", []byte("fLaC"), SampleRate); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := DecodeClip("music/broken.wav", []byte("nope"), SampleRate); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLibraryCachesClipsAndFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"music/loop.wav": {Data: pcmWAV(SampleRate, SampleRate*2)},
	}
	lib := NewLibrary(fsys, SampleRate)

	if got := lib.Duration("assets/music/loop.wav"); got != 2*time.Second {
		t.Fatalf("expected 2s, got %v", got)
	}
	first, err := lib.Clip("music/loop.wav")
	if err != nil {
		t.Fatalf("clip: %v", err)
	}
	second, _ := lib.Clip("music/loop.wav")
	if first != second {
		t.Fatalf("expected cached clip")
	}

	if got := lib.Duration("music/missing.wav"); got != 0 {
		t.Fatalf("missing asset should have no duration, got %v", got)
	}
	_, err = lib.Clip("music/missing.wav")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	// A failure is remembered until forgotten.
	fsys["music/missing.wav"] = &fstest.MapFile{Data: pcmWAV(SampleRate, SampleRate)}
	if got := lib.Duration("music/missing.wav"); got != 0 {
		t.Fatalf("expected cached failure, got %v", got)
	}
	lib.Forget("music/missing.wav")
	if got := lib.Duration("music/missing.wav"); got != time.Second {
		t.Fatalf("expected reload after Forget, got %v", got)
	}

	if got := lib.Duration(""); got != 0 {
		t.Fatalf("empty asset should have no duration")
	}
}

func TestClipLoopKeepsStreaming(t *testing.T) {
	clip, err := DecodeClip("music/loop.wav", pcmWAV(SampleRate, SampleRate/10), SampleRate)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	loop := clip.Loop()
	buf := make([]byte, 3*len(clip.PCM)+bytesPerFrame)
	if _, err := io.ReadFull(loop, buf); err != nil {
		t.Fatalf("expected the loop to stream past the end of the clip, got %v", err)
	}
}

func TestClampVolume(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.01: 0.01, 1: 1, 3: 1}
	for in, want := range cases {
		if got := clampVolume(in); got != want {
			t.Fatalf("clamp(%v): expected %v, got %v", in, want, got)
		}
	}
}
