package export

import (
	"fmt"
	"strings"

	"github.com/clapstudio/speechsplit/internal/types"
)

// Metadata renders the human-readable timing report included in every
// archive: header, then one block per sentence with 1-based ordinal and
// start/end/duration at fixed 2-decimal precision.
func Metadata(b types.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Audio Fragments Metadata
========================

Title: %s
Language: %s
Total Sentences: %d
Audio Format: WAV (uncompressed)

Sentence Details:
`, b.Title, b.Language, len(b.Sentences))

	for i, as := range b.AudioSentences {
		fmt.Fprintf(&sb, "\n%03d. %s\n", i+1, as.Text)
		fmt.Fprintf(&sb, "    Start: %.2fs\n", as.Start)
		fmt.Fprintf(&sb, "    End: %.2fs\n", as.End)
		fmt.Fprintf(&sb, "    Duration: %.2fs\n", as.Duration())
	}
	return sb.String()
}
