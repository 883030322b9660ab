// Package usecase sequences one upload through classify, extract,
// transcribe, segment, and align, and produces the immutable result
// bundle. A single run holds no state beyond its own scope; the
// resource guard opened here is released on every exit path.
package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clapstudio/speechsplit/internal/audio"
	"github.com/clapstudio/speechsplit/internal/domain/align"
	"github.com/clapstudio/speechsplit/internal/guard"
	"github.com/clapstudio/speechsplit/internal/media"
	"github.com/clapstudio/speechsplit/internal/ports"
	"github.com/clapstudio/speechsplit/internal/types"
)

type Deps struct {
	Media     ports.MediaTool
	ASR       ports.Transcriber
	Sentences ports.SentenceSegmenter
	Words     ports.WordTokenizer
}

type Usecase struct {
	d   Deps
	log zerolog.Logger
}

func New(d Deps, log zerolog.Logger) Usecase { return Usecase{d: d, log: log} }

// Input is one uploaded recording: raw bytes plus the declared
// filename. It exists only for the duration of Run.
type Input struct {
	Name string
	Data []byte

	// TmpDir is the guard's base directory; empty means the system
	// temp dir.
	TmpDir string
}

// Run processes one upload start to finish. Any stage failure returns a
// typed error and leaves no temporary files behind.
func (u Usecase) Run(ctx context.Context, in Input) (types.Bundle, error) {
	g := guard.New(in.TmpDir, u.log)
	defer g.ReleaseAll()

	uploadPath, err := g.File(filepath.Ext(in.Name))
	if err != nil {
		return types.Bundle{}, err
	}
	if err := os.WriteFile(uploadPath, in.Data, 0o600); err != nil {
		return types.Bundle{}, err
	}

	kind, contentType := media.Classify(uploadPath)
	u.log.Debug().Str("name", in.Name).Str("content_type", contentType).Stringer("kind", kind).Msg("classified upload")

	audioPath := uploadPath
	switch kind {
	case media.Video:
		mp3Path, err := g.File(".mp3")
		if err != nil {
			return types.Bundle{}, err
		}
		if err := u.d.Media.ExtractAudio(ctx, uploadPath, mp3Path); err != nil {
			return types.Bundle{}, &types.ExtractionError{Err: err}
		}
		// The original video is dead weight once its audio track is
		// out; free it now instead of at end of scope.
		g.Release(uploadPath)
		audioPath = mp3Path
	case media.Audio:
	default:
		return types.Bundle{}, &types.InputError{Name: in.Name, ContentType: contentType}
	}

	bitrate, err := u.d.Media.ProbeBitrate(ctx, audioPath)
	if err != nil {
		return types.Bundle{}, &types.ExtractionError{Err: err}
	}

	wavPath, err := g.File(".wav")
	if err != nil {
		return types.Bundle{}, err
	}
	if err := u.d.Media.TranscodeWAV(ctx, audioPath, wavPath); err != nil {
		return types.Bundle{}, &types.ExtractionError{Err: err}
	}
	track, err := audio.DecodeFile(wavPath)
	if err != nil {
		return types.Bundle{}, &types.ExtractionError{Err: err}
	}

	tr, err := u.d.ASR.Transcribe(ctx, audioPath)
	if err != nil {
		return types.Bundle{}, &types.TranscriptionError{Err: err}
	}
	u.log.Info().Str("language", tr.Language).Int("words", len(tr.Words)).Msg("transcription complete")

	sentences, err := u.d.Sentences.Segment(ctx, tr.Text, tr.Language)
	if err != nil {
		return types.Bundle{}, &types.TranscriptionError{Err: err}
	}

	spans, err := align.Resolve(sentences, tr.Words, u.d.Words.Tokenize)
	if err != nil {
		return types.Bundle{}, err
	}
	audioSentences, err := align.AudioSentences(spans, tr.Words, track)
	if err != nil {
		return types.Bundle{}, err
	}
	u.log.Info().Int("sentences", len(spans)).Msg("alignment complete")

	return types.Bundle{
		Title:          deriveTitle(in.Name),
		Language:       tr.Language,
		Text:           tr.Text,
		Bitrate:        bitrate,
		Sentences:      spans,
		AudioSentences: audioSentences,
	}, nil
}

func deriveTitle(name string) string {
	base := filepath.Base(name)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" {
		return "recording"
	}
	return title
}
