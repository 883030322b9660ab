package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Reported when the container declares no bitrate (ffprobe prints N/A).
const defaultBitrate = "128"

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// ExtractAudio demuxes and encodes the audio track of a video into a
// standalone MP3. Fails when the container is corrupt or carries no
// audio stream.
func (a *Adapter) ExtractAudio(ctx context.Context, inVideo, outAudio string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inVideo,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "2",
		outAudio,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// TranscodeWAV converts any supported audio file to PCM WAV so the
// track can be decoded and sliced in memory.
func (a *Adapter) TranscodeWAV(ctx context.Context, inAudio, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inAudio,
		"-acodec", "pcm_s16le",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg transcode wav: %w\n%s", err, string(b))
	}
	return nil
}

// ProbeBitrate reads the container-level bit_rate via ffprobe.
func (a *Adapter) ProbeBitrate(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=bit_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffprobe bitrate: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	if _, err := strconv.Atoi(s); err != nil {
		return defaultBitrate, nil
	}
	return s, nil
}
