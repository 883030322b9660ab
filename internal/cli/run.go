package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clapstudio/speechsplit/internal/pipeline"
)

func run(cmd *cobra.Command, input string, log zerolog.Logger) error {
	outDir, _ := cmd.Flags().GetString("out")
	renderHTML, _ := cmd.Flags().GetBool("html")
	tmpDir, _ := cmd.Flags().GetString("tmp")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Input:      absIn,
		OutDir:     outDir,
		RenderHTML: renderHTML,
		TmpDir:     tmpDir,
		Log:        log,

		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		WhisperBin:   os.Getenv("WHISPER_BIN"),
		WhisperModel: os.Getenv("WHISPER_MODEL"),

		WhisperAPIKey:       os.Getenv("OPENAI_API_KEY"),
		WhisperAPIModel:     getenvDefault("WHISPER_API_MODEL", "whisper-1"),
		WhisperBaseURL:      getenvDefault("WHISPER_BASE_URL", "https://api.openai.com"),
		WhisperAllowedHosts: splitHosts(os.Getenv("WHISPER_ALLOWED_HOSTS")),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitHosts(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
