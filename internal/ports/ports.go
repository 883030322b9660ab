package ports

import (
	"context"

	"github.com/clapstudio/speechsplit/internal/types"
)

// MediaTool abstracts the ffmpeg-level operations the pipeline needs.
type MediaTool interface {
	// ExtractAudio demuxes the audio track of a video into a
	// standalone MP3 file at outAudio.
	ExtractAudio(ctx context.Context, inVideo, outAudio string) error
	// TranscodeWAV converts any audio file to PCM WAV at outWav.
	TranscodeWAV(ctx context.Context, inAudio, outWav string) error
	// ProbeBitrate reports the container bitrate, or a default when
	// the container does not declare one.
	ProbeBitrate(ctx context.Context, path string) (string, error)
}

// Transcriber is the external speech-to-text engine. It returns the
// detected language, the full transcript text, and word timestamps.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (types.Transcription, error)
}

// SentenceSegmenter splits transcript text into ordered sentences
// covering the text.
type SentenceSegmenter interface {
	Segment(ctx context.Context, text, language string) ([]string, error)
}

// WordTokenizer splits text into word tokens. Used by alignment to
// resolve how many transcript words a sentence spans.
type WordTokenizer interface {
	Tokenize(text string) []string
}
