// Package align maps segmented sentences onto the transcript word
// sequence and slices the source track into per-sentence clips.
package align

import (
	"github.com/clapstudio/speechsplit/internal/audio"
	"github.com/clapstudio/speechsplit/internal/types"
)

// Resolve assigns each sentence its span of transcript words. Spans are
// contiguous, non-overlapping, and together cover the full word
// sequence: each sentence consumes as many words as its own token
// count, and the final sentence absorbs any trailing words so coverage
// always holds.
//
// A sentence that tokenizes to zero words, or one for which no
// transcript words remain, is an inconsistency in the external engines
// and is surfaced as an AlignmentError rather than dropped or padded.
func Resolve(sentences []string, words []types.Word, tokenize func(string) []string) ([]types.Sentence, error) {
	if len(sentences) == 0 {
		if len(words) == 0 {
			return nil, nil
		}
		return nil, &types.AlignmentError{Index: 0, Reason: "segmenter produced no sentences for a non-empty transcript"}
	}

	out := make([]types.Sentence, 0, len(sentences))
	cursor := 0
	for i, s := range sentences {
		n := len(tokenize(s))
		if n == 0 {
			return nil, &types.AlignmentError{Sentence: s, Index: i, Reason: "sentence has no aligned words"}
		}
		if cursor >= len(words) {
			return nil, &types.AlignmentError{Sentence: s, Index: i, Reason: "no transcript words remaining"}
		}

		last := cursor + n - 1
		if last >= len(words) {
			last = len(words) - 1
		}
		if i == len(sentences)-1 {
			last = len(words) - 1
		}
		if words[last].End < words[cursor].Start {
			return nil, &types.AlignmentError{Sentence: s, Index: i, Reason: "word boundary ordering violation"}
		}

		out = append(out, types.Sentence{Text: s, FirstWord: cursor, LastWord: last})
		cursor = last + 1
	}
	return out, nil
}

// AudioSentences slices one clip per sentence span. Clip bounds are
// exactly the first word's start and the last word's end; no padding or
// surrounding context is added. Every clip copies its samples, so the
// result is independent of the track's lifetime.
func AudioSentences(sentences []types.Sentence, words []types.Word, track *audio.Track) ([]types.AudioSentence, error) {
	out := make([]types.AudioSentence, 0, len(sentences))
	for i, s := range sentences {
		start := words[s.FirstWord].Start
		end := words[s.LastWord].End
		clip, err := track.Slice(start, end)
		if err != nil {
			return nil, &types.AlignmentError{Sentence: s.Text, Index: i, Reason: err.Error()}
		}
		out = append(out, types.AudioSentence{Text: s.Text, Start: start, End: end, Clip: clip})
	}
	return out, nil
}
