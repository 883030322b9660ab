// Package pipeline wires concrete adapters into the usecase and writes
// the run's artifacts to disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/clapstudio/speechsplit/internal/domain/export"
	"github.com/clapstudio/speechsplit/internal/ports"
	"github.com/clapstudio/speechsplit/internal/ports/adapters/ffmpeg"
	"github.com/clapstudio/speechsplit/internal/ports/adapters/textseg"
	"github.com/clapstudio/speechsplit/internal/ports/adapters/whisperapi"
	"github.com/clapstudio/speechsplit/internal/ports/adapters/whispercpp"
	"github.com/clapstudio/speechsplit/internal/usecase"
)

type Config struct {
	Input      string
	OutDir     string
	RenderHTML bool
	Log        zerolog.Logger

	// TmpDir overrides the base directory for guarded temp files.
	TmpDir string

	FFmpegPath  string
	FFprobePath string

	// WhisperBin selects the local whisper.cpp engine when set;
	// otherwise the HTTP engine is used and WhisperAPIKey is required.
	WhisperBin   string
	WhisperModel string

	WhisperAPIKey       string
	WhisperAPIModel     string
	WhisperBaseURL      string
	WhisperAllowedHosts []string
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.WhisperBin != "" {
		if c.WhisperModel == "" {
			return errors.New("whisper model path is required with a local whisper binary")
		}
		return nil
	}
	if c.WhisperAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env) or configure WHISPER_BIN")
	}
	return whisperapi.ValidateBaseURL(c.WhisperBaseURL, c.WhisperAllowedHosts)
}

// Run processes one input file and writes the archive (and optionally
// the players page) under cfg.OutDir.
func Run(ctx context.Context, cfg Config) error {
	var asr ports.Transcriber
	if cfg.WhisperBin != "" {
		asr = whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
	} else {
		asr = whisperapi.New(cfg.WhisperAPIKey, cfg.WhisperAPIModel, cfg.WhisperBaseURL)
	}
	seg := textseg.New()

	uc := usecase.New(usecase.Deps{
		Media:     ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		ASR:       asr,
		Sentences: seg,
		Words:     seg,
	}, cfg.Log)

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}

	bundle, err := uc.Run(ctx, usecase.Input{
		Name:   filepath.Base(cfg.Input),
		Data:   data,
		TmpDir: cfg.TmpDir,
	})
	if err != nil {
		return err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	archive, err := export.Archive(bundle)
	if err != nil {
		return err
	}
	zipPath := filepath.Join(outDir, bundle.Title+"_audio_fragments.zip")
	if err := os.WriteFile(zipPath, archive, 0o644); err != nil {
		return err
	}
	cfg.Log.Info().Str("path", zipPath).Int("sentences", len(bundle.Sentences)).Msg("archive written")

	if cfg.RenderHTML {
		page, err := export.PlayersPage(bundle)
		if err != nil {
			return err
		}
		htmlPath := filepath.Join(outDir, bundle.Title+"_sentences.html")
		if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
			return err
		}
		cfg.Log.Info().Str("path", htmlPath).Msg("players page written")
	}
	return nil
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whisperapi.Adapter)(nil)
var _ ports.Transcriber = (*whispercpp.Adapter)(nil)
var _ ports.SentenceSegmenter = textseg.Segmenter{}
var _ ports.WordTokenizer = textseg.Segmenter{}
