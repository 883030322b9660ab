package align

import (
	"errors"
	"strings"
	"testing"

	"github.com/clapstudio/speechsplit/internal/audio"
	"github.com/clapstudio/speechsplit/internal/types"
)

func tokenize(s string) []string { return strings.Fields(s) }

func testWords() []types.Word {
	return []types.Word{
		{Text: "Hello", Start: 0.0, End: 0.5},
		{Text: "world", Start: 0.6, End: 1.0},
		{Text: "Bye", Start: 5.0, End: 5.3},
	}
}

func TestResolve_SpansCoverAllWords(t *testing.T) {
	t.Parallel()

	spans, err := Resolve([]string{"Hello world.", "Bye."}, testWords(), tokenize)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].FirstWord != 0 || spans[0].LastWord != 1 {
		t.Fatalf("unexpected first span: %+v", spans[0])
	}
	if spans[1].FirstWord != 2 || spans[1].LastWord != 2 {
		t.Fatalf("unexpected second span: %+v", spans[1])
	}

	// Contiguity and full coverage.
	cursor := 0
	for i, s := range spans {
		if s.FirstWord != cursor {
			t.Fatalf("span %d not contiguous: first=%d, want %d", i, s.FirstWord, cursor)
		}
		if s.LastWord < s.FirstWord {
			t.Fatalf("span %d inverted: %+v", i, s)
		}
		cursor = s.LastWord + 1
	}
	if cursor != len(testWords()) {
		t.Fatalf("spans cover %d words, want %d", cursor, len(testWords()))
	}
}

func TestResolve_FinalSentenceAbsorbsTrailingWords(t *testing.T) {
	t.Parallel()

	// Tokenizer sees 1 word for the last sentence but two transcript
	// words remain; the final span must still reach the last word.
	words := []types.Word{
		{Text: "One", Start: 0, End: 1},
		{Text: "Two", Start: 1, End: 2},
		{Text: "Three", Start: 2, End: 3},
	}
	spans, err := Resolve([]string{"One.", "Two."}, words, tokenize)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if spans[1].LastWord != 2 {
		t.Fatalf("expected final span to absorb trailing words, got %+v", spans[1])
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sentences []string
		words     []types.Word
	}{
		{"empty sentence", []string{"Hello world.", ""}, testWords()},
		{"more sentences than words", []string{"Hello.", "world.", "Bye.", "Extra."}, testWords()},
		{"sentences without words", []string{"Hello."}, nil},
		{"words without sentences", nil, testWords()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.sentences, tt.words, tokenize)
			var aerr *types.AlignmentError
			if !errors.As(err, &aerr) {
				t.Fatalf("expected AlignmentError, got %v", err)
			}
		})
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	t.Parallel()

	spans, err := Resolve(nil, nil, tokenize)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %d", len(spans))
	}
}

func TestAudioSentences_ClipBoundsMatchWordTimes(t *testing.T) {
	t.Parallel()

	// 10 seconds of mono 16k audio.
	const rate = 16000
	track := audio.NewTrack(rate, 1, 16, make([]int, 10*rate))

	spans, err := Resolve([]string{"Hello world.", "Bye."}, testWords(), tokenize)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got, err := AudioSentences(spans, testWords(), track)
	if err != nil {
		t.Fatalf("audio sentences: %v", err)
	}
	if len(got) != len(spans) {
		t.Fatalf("expected %d audio sentences, got %d", len(spans), len(got))
	}

	if got[0].Start != 0.0 || got[0].End != 1.0 {
		t.Fatalf("unexpected bounds for first sentence: %+v", got[0])
	}
	if got[1].Start != 5.0 || got[1].End != 5.3 {
		t.Fatalf("unexpected bounds for second sentence: %+v", got[1])
	}

	// Clip length matches the word-bounded range, no padding.
	if n := got[0].Clip.Samples(); n != rate {
		t.Fatalf("expected %d samples for a 1s clip, got %d", rate, n)
	}
	wantSecond := int(0.3 * rate)
	if n := got[1].Clip.Samples(); n < wantSecond-1 || n > wantSecond+1 {
		t.Fatalf("expected about %d samples for a 0.3s clip, got %d", wantSecond, n)
	}
}

func TestAudioSentences_EmptyRangeIsAlignmentError(t *testing.T) {
	t.Parallel()

	track := audio.NewTrack(16000, 1, 16, make([]int, 16000))
	words := []types.Word{{Text: "late", Start: 5.0, End: 5.5}} // beyond the 1s track
	spans := []types.Sentence{{Text: "late", FirstWord: 0, LastWord: 0}}

	_, err := AudioSentences(spans, words, track)
	var aerr *types.AlignmentError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}
