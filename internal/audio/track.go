package audio

import (
	"fmt"
	"math"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Track is a fully decoded PCM audio track held in memory. Once a Track
// exists, the WAV file it was decoded from is no longer needed.
type Track struct {
	buf      *gaudio.IntBuffer
	bitDepth int
}

// Clip is an independently exportable slice of a Track. Its sample data
// is copied at slice time, never aliased, so a Clip outlives the Track
// and any guarded temp files behind it.
type Clip struct {
	buf      *gaudio.IntBuffer
	bitDepth int
}

// DecodeFile reads a PCM WAV file into memory.
func DecodeFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("decode wav %s: missing format info", path)
	}

	bitDepth := int(d.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	return &Track{buf: buf, bitDepth: bitDepth}, nil
}

// NewTrack builds a track from raw interleaved PCM samples.
func NewTrack(sampleRate, channels, bitDepth int, data []int) *Track {
	return &Track{
		buf: &gaudio.IntBuffer{
			Format:         &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:           data,
			SourceBitDepth: bitDepth,
		},
		bitDepth: bitDepth,
	}
}

// SampleRate returns the track sample rate in Hz.
func (t *Track) SampleRate() int { return t.buf.Format.SampleRate }

// Channels returns the number of interleaved channels.
func (t *Track) Channels() int { return t.buf.Format.NumChannels }

// Duration returns the track length in seconds.
func (t *Track) Duration() float64 {
	frames := len(t.buf.Data) / t.buf.Format.NumChannels
	return float64(frames) / float64(t.buf.Format.SampleRate)
}

// Slice copies the samples between start and end (seconds) into a new
// Clip. Bounds are clamped to the track; start >= end yields an error.
func (t *Track) Slice(start, end float64) (*Clip, error) {
	if start < 0 {
		start = 0
	}
	if end > t.Duration() {
		end = t.Duration()
	}
	if start >= end {
		return nil, fmt.Errorf("slice bounds [%.2f, %.2f): empty range", start, end)
	}

	ch := t.buf.Format.NumChannels
	frameA := int(math.Floor(start * float64(t.buf.Format.SampleRate)))
	frameB := int(math.Floor(end * float64(t.buf.Format.SampleRate)))
	a := frameA * ch
	b := frameB * ch
	if b > len(t.buf.Data) {
		b = len(t.buf.Data)
	}
	if a >= b {
		return nil, fmt.Errorf("slice bounds [%.2f, %.2f): empty range", start, end)
	}

	data := make([]int, b-a)
	copy(data, t.buf.Data[a:b])
	return &Clip{
		buf: &gaudio.IntBuffer{
			Format:         &gaudio.Format{NumChannels: ch, SampleRate: t.buf.Format.SampleRate},
			Data:           data,
			SourceBitDepth: t.buf.SourceBitDepth,
		},
		bitDepth: t.bitDepth,
	}, nil
}

// Samples returns the number of interleaved samples in the clip.
func (c *Clip) Samples() int { return len(c.buf.Data) }

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	frames := len(c.buf.Data) / c.buf.Format.NumChannels
	return float64(frames) / float64(c.buf.Format.SampleRate)
}
