package types

import "github.com/clapstudio/speechsplit/internal/audio"

// Word is one recognized token with its time bounds in seconds.
// Across a transcript, word times are monotonically non-decreasing
// and Start <= End for every word.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcription is the normalized output of the external engine.
type Transcription struct {
	Language string `json:"language"`
	Text     string `json:"text"`
	Words    []Word `json:"words"`
}

// Sentence is a contiguous run of transcript words as grouped by the
// segmenter. FirstWord and LastWord are inclusive indexes into the
// transcript word sequence.
type Sentence struct {
	Text      string `json:"text"`
	FirstWord int    `json:"first_word"`
	LastWord  int    `json:"last_word"`
}

// AudioSentence pairs a sentence with its sliced audio. Clip holds its
// own sample data, so it stays valid after the source track's backing
// temp files are released.
type AudioSentence struct {
	Text  string
	Start float64
	End   float64
	Clip  *audio.Clip
}

// Duration returns the clip length in seconds.
func (a AudioSentence) Duration() float64 { return a.End - a.Start }

// Bundle is the immutable result of one pipeline run. Sentences and
// AudioSentences are index-aligned and always the same length.
type Bundle struct {
	Title          string
	Language       string
	Text           string
	Bitrate        string
	Sentences      []Sentence
	AudioSentences []AudioSentence
}
