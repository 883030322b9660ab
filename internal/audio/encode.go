package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// WAV encodes the clip as a complete WAV file in memory. The original
// implementation exported through a temp file and read it back; encoding
// straight into a buffer removes that filesystem round trip.
func (c *Clip) WAV() ([]byte, error) {
	ws := &seekBuffer{}
	enc := wav.NewEncoder(ws, c.buf.Format.SampleRate, c.bitDepth, c.buf.Format.NumChannels, 1)
	if err := enc.Write(c.buf); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize wav: %w", err)
	}
	return ws.data, nil
}

// seekBuffer is a minimal in-memory io.WriteSeeker. The wav encoder
// seeks back to patch RIFF chunk sizes on Close.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		if need > cap(b.data) {
			grown := make([]byte, need, need*2)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:need]
		}
	}
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("seek: negative position %d", abs)
	}
	b.pos = int(abs)
	return abs, nil
}
