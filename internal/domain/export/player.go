package export

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/clapstudio/speechsplit/internal/audio"
	"github.com/clapstudio/speechsplit/internal/types"
)

// Player renders one clip as a self-contained <audio> element with a
// base64 data URI source, playable inline without a secondary fetch.
// Output is deterministic for identical clip bytes.
func Player(title string, clip *audio.Clip) (string, error) {
	data, err := clip.WAV()
	if err != nil {
		return "", err
	}
	src := "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf(`<audio title=%q controls style="width: 100%%;">
    <source src=%q type="audio/wav">
    Your browser does not support the audio element.
</audio>`, html.EscapeString(title), src), nil
}

// PlayersPage renders a static sentence-by-sentence listening page: the
// ordinal, sentence text, inline player, and time range for every
// sentence of the bundle.
func PlayersPage(b types.Bundle) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(b.Title))
	fmt.Fprintf(&sb, "<h1>%s</h1>\n<p>Language: %s</p>\n", html.EscapeString(b.Title), html.EscapeString(b.Language))

	for i, as := range b.AudioSentences {
		player, err := Player(SafeName(as.Text), as.Clip)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "<div>\n<p><strong>%d.</strong> %s</p>\n%s\n<p><small>Time: %.2fs - %.2fs</small></p>\n</div>\n",
			i+1, html.EscapeString(as.Text), player, as.Start, as.End)
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}
