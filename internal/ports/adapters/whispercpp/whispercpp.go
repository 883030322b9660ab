// Package whispercpp runs a local whisper.cpp binary as the
// transcription engine, for use without an API key.
package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/clapstudio/speechsplit/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Transcribe shells out to whisper.cpp with word-level segmenting
// (-ml 1) and JSON output, then normalizes the result. The JSON lands
// in a private temp dir removed before returning.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (types.Transcription, error) {
	dir, err := os.MkdirTemp("", "whispercpp")
	if err != nil {
		return types.Transcription{}, err
	}
	defer os.RemoveAll(dir)

	outPrefix := filepath.Join(dir, "transcript")
	cmd := exec.CommandContext(ctx, a.bin,
		"-m", a.model,
		"-f", audioPath,
		"-ml", "1",
		"-oj",
		"-of", outPrefix,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcription{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcription{}, err
	}

	var raw struct {
		Result struct {
			Language string `json:"language"`
		} `json:"result"`
		Transcription []struct {
			Text    string `json:"text"`
			Offsets struct {
				From int64 `json:"from"`
				To   int64 `json:"to"`
			} `json:"offsets"`
		} `json:"transcription"`
	}
	if err := json.Unmarshal(jb, &raw); err != nil {
		return types.Transcription{}, fmt.Errorf("parse whisper.cpp output: %w", err)
	}

	tr := types.Transcription{Language: strings.TrimSpace(raw.Result.Language)}
	var parts []string
	for _, seg := range raw.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		tr.Words = append(tr.Words, types.Word{
			Text:  text,
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
		})
	}
	tr.Text = strings.Join(parts, " ")
	return tr, nil
}
