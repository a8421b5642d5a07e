package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the default mixing rate.
const SampleRate = 44100

// Decoded streams are 16-bit little endian stereo.
const bytesPerFrame = 4

var ErrUnsupportedFormat = errors.New("assets: unsupported audio format")

// Clip is a fully decoded sound ready to be handed to a player.
type Clip struct {
	PCM      []byte
	Duration time.Duration
}

// Loop streams the clip over and over.
func (c *Clip) Loop() *audio.InfiniteLoop {
	return audio.NewInfiniteLoop(bytes.NewReader(c.PCM), int64(len(c.PCM)))
}

// Library decodes sound assets from an fs.FS on first use and keeps them.
// Failures are remembered too, so a missing wave is not re-read every frame.
type Library struct {
	fsys       fs.FS
	sampleRate int
	clips      map[string]*Clip
	failed     map[string]error
}

func NewLibrary(fsys fs.FS, sampleRate int) *Library {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	return &Library{
		fsys:       fsys,
		sampleRate: sampleRate,
		clips:      make(map[string]*Clip),
		failed:     make(map[string]error),
	}
}

// Clip returns the decoded asset at an assets-relative path.
func (l *Library) Clip(name string) (*Clip, error) {
	clean := cleanAssetPath(name)
	if clip, ok := l.clips[clean]; ok {
		return clip, nil
	}
	if err, ok := l.failed[clean]; ok {
		return nil, err
	}

	clip, err := l.load(clean)
	if err != nil {
		l.failed[clean] = err
		return nil, err
	}
	l.clips[clean] = clip
	return clip, nil
}

// Duration is the length of an asset, or zero when it cannot be decoded.
func (l *Library) Duration(name string) time.Duration {
	if name == "" {
		return 0
	}
	clip, err := l.Clip(name)
	if err != nil {
		return 0
	}
	return clip.Duration
}

// Forget drops a cached asset so the next use reads it again.
func (l *Library) Forget(name string) {
	clean := cleanAssetPath(name)
	delete(l.clips, clean)
	delete(l.failed, clean)
}

func (l *Library) load(name string) (*Clip, error) {
	if l.fsys == nil {
		return nil, fmt.Errorf("assets: load %q: %w", name, fs.ErrNotExist)
	}
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", name, err)
	}
	return DecodeClip(name, b, l.sampleRate)
}

// DecodeClip decodes wav, ogg or mp3 data, choosing the decoder by extension.
func DecodeClip(name string, data []byte, sampleRate int) (*Clip, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, reader)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, reader)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}

	frames := len(pcm) / bytesPerFrame
	return &Clip{
		PCM:      pcm,
		Duration: time.Duration(frames) * time.Second / time.Duration(sampleRate),
	}, nil
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return strings.TrimPrefix(path.Clean(s), "/")
}
