// Package media decides whether an upload is audio, video, or neither.
package media

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the classification outcome for one upload.
type Kind int

const (
	Invalid Kind = iota
	Audio
	Video
)

func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return "invalid"
	}
}

// Extensions the uploader accepts. mime.TypeByExtension misses some of
// these on minimal systems (.m4a in particular), so they are pinned.
var extTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
	".ogg": "audio/ogg",
	".mp4": "video/mp4",
	".avi": "video/x-msvideo",
	".mov": "video/quicktime",
}

// Classify resolves the content type of the file at path, preferring
// the declared extension and falling back to content sniffing, and maps
// it onto the audio/video/invalid decision table.
func Classify(path string) (Kind, string) {
	ct := typeByExtension(path)
	if ct == "" {
		ct = sniff(path)
	}

	switch {
	case strings.HasPrefix(ct, "video/"):
		return Video, ct
	case strings.HasPrefix(ct, "audio/"):
		return Audio, ct
	default:
		return Invalid, ct
	}
}

func typeByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := extTypes[ext]; ok {
		return ct
	}
	ct := mime.TypeByExtension(ext)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return ""
	}
	ct := http.DetectContentType(head[:n])
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
