// Package whisperapi talks to an OpenAI-compatible transcription
// endpoint and normalizes its verbose_json response into the pipeline's
// transcription shape.
package whisperapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clapstudio/speechsplit/internal/types"
)

const requestTimeout = 10 * time.Minute

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = "whisper-1"
	}
	baseURL = normalizeBaseURL(baseURL)
	return &Adapter{key: apiKey, model: model, baseURL: baseURL, client: &http.Client{Timeout: requestTimeout}}
}

// Transcribe uploads the audio file and returns language, full text,
// and word timestamps. Engine failures (auth included) are returned
// verbatim; no retries happen here.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (types.Transcription, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return types.Transcription{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return types.Transcription{}, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return types.Transcription{}, fmt.Errorf("read audio: %w", err)
	}
	fields := [][2]string{
		{"model", a.model},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "word"},
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return types.Transcription{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return types.Transcription{}, err
	}

	url := a.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return types.Transcription{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return types.Transcription{}, fmt.Errorf("whisper timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return types.Transcription{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return types.Transcription{}, fmt.Errorf("whisper status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return types.Transcription{}, fmt.Errorf("whisper status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	var raw struct {
		Language string `json:"language"`
		Text     string `json:"text"`
		Words    []struct {
			Word  string  `json:"word"`
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"words"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.Transcription{}, fmt.Errorf("decode whisper response: %w", err)
	}

	tr := types.Transcription{
		Language: strings.TrimSpace(raw.Language),
		Text:     strings.TrimSpace(raw.Text),
	}
	for _, w := range raw.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		tr.Words = append(tr.Words, types.Word{Text: text, Start: w.Start, End: w.End})
	}
	return tr, nil
}

func redactSecrets(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "[redacted]")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
