// Package textseg is the default local sentence segmenter and word
// tokenizer. Sentences split after terminal punctuation; tokens split
// on whitespace, which matches how the transcription engines emit
// word timestamps.
package textseg

import (
	"context"
	"strings"
	"unicode"
)

type Segmenter struct{}

func New() Segmenter { return Segmenter{} }

var terminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, '…': {},
	'。': {}, '！': {}, '？': {},
}

// Fullwidth terminators end a sentence with no following space.
var fullwidth = map[rune]struct{}{
	'。': {}, '！': {}, '？': {},
}

// Segment splits text into ordered sentences. Terminal punctuation
// stays attached to its sentence; a trailing fragment without a
// terminator still becomes a sentence so the text is fully covered.
// The language hint is accepted for engine compatibility but the
// splitting rules are language-neutral.
func (Segmenter) Segment(_ context.Context, text, _ string) ([]string, error) {
	var out []string
	var cur strings.Builder

	flush := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s != "" {
			out = append(out, s)
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if _, ok := terminators[r]; !ok {
			continue
		}
		// Keep runs like "..." or "?!" together, and don't split
		// inside decimal numbers ("3.5 billion").
		if i+1 < len(runes) {
			next := runes[i+1]
			if _, again := terminators[next]; again {
				continue
			}
			if r == '.' && unicode.IsDigit(next) {
				continue
			}
			if _, wide := fullwidth[r]; !wide {
				if !unicode.IsSpace(next) && next != '"' && next != '\'' {
					continue
				}
			}
		}
		flush()
	}
	flush()
	return out, nil
}

// Tokenize splits text into whitespace-delimited word tokens.
func (Segmenter) Tokenize(text string) []string {
	return strings.Fields(text)
}
