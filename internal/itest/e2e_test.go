//go:build integration

package itest

import (
	"archive/zip"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clapstudio/speechsplit/internal/pipeline"
)

func makeSpeechWav(t *testing.T, dir string) string {
	t.Helper()
	wav := filepath.Join(dir, "speech.wav")
	text := "Hello world. This is the first sentence. Here comes the second one. Goodbye."
	cmd := exec.Command("espeak-ng", "-w", wav, text)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("espeak-ng failed: %v\n%s", err, string(b))
	}
	return wav
}

func makeSpeechMP4(t *testing.T, dir, wav string) string {
	t.Helper()
	in := filepath.Join(dir, "talk.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=15",
		"-i", wav,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return in
}

func runPipeline(t *testing.T, input, outDir string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		Input:       input,
		OutDir:      outDir,
		TmpDir:      t.TempDir(),
		Log:         zerolog.Nop(),
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		WhisperBin:   os.Getenv("WHISPER_BIN"),
		WhisperModel: os.Getenv("WHISPER_MODEL"),

		WhisperAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := pipeline.Run(ctx, cfg); err != nil {
		t.Fatalf("pipeline: %v", err)
	}
}

func checkArchive(t *testing.T, zipPath, title string) {
	t.Helper()
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	n := len(zr.File)
	if n < 3 {
		t.Fatalf("expected transcript + clips + metadata, got %d entries", n)
	}
	first := zr.File[0].Name
	last := zr.File[n-1].Name
	if first != title+"_transcript.txt" {
		t.Fatalf("unexpected first entry: %s", first)
	}
	if last != title+"_metadata.txt" {
		t.Fatalf("unexpected last entry: %s", last)
	}
	for _, f := range zr.File[1 : n-1] {
		if !strings.HasSuffix(f.Name, ".wav") {
			t.Fatalf("unexpected middle entry: %s", f.Name)
		}
	}
}

func TestE2E_AudioInput(t *testing.T) {
	requireEngine(t)

	tmp := t.TempDir()
	wav := makeSpeechWav(t, tmp)

	sec, err := probeDurationSeconds(wav)
	if err != nil {
		t.Fatalf("probe fixture: %v", err)
	}
	if sec < 1 {
		t.Fatalf("fixture too short: %.2fs", sec)
	}

	outDir := filepath.Join(tmp, "out")
	runPipeline(t, wav, outDir)
	checkArchive(t, filepath.Join(outDir, "speech_audio_fragments.zip"), "speech")
}

func TestE2E_VideoInput(t *testing.T) {
	requireEngine(t)

	tmp := t.TempDir()
	wav := makeSpeechWav(t, tmp)
	mp4 := makeSpeechMP4(t, tmp, wav)

	outDir := filepath.Join(tmp, "out")
	runPipeline(t, mp4, outDir)
	checkArchive(t, filepath.Join(outDir, "talk_audio_fragments.zip"), "talk")
}

func requireEngine(t *testing.T) {
	t.Helper()
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("WHISPER_BIN") == "" {
		t.Fatalf("OPENAI_API_KEY or WHISPER_BIN is required for itest")
	}
}
