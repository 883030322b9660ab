package types

import "fmt"

// InputError reports an upload that is neither audio nor video. It is
// terminal: the pipeline stops before any processing.
type InputError struct {
	Name        string
	ContentType string
}

func (e *InputError) Error() string {
	if e.ContentType == "" {
		return fmt.Sprintf("input %q is not a valid audio or video file", e.Name)
	}
	return fmt.Sprintf("input %q is not a valid audio or video file (detected %s)", e.Name, e.ContentType)
}

// ExtractionError reports a failed audio demux from a video container
// (no audio track, corrupt file).
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extract audio: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }

// TranscriptionError wraps any failure of the external transcription or
// segmentation engine, including auth/config absence. Never retried here.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return "transcription engine: " + e.Err.Error() }
func (e *TranscriptionError) Unwrap() error { return e.Err }

// AlignmentError reports an inconsistency between segmenter output and
// the transcript word sequence, such as a sentence with no aligned
// words. Surfaced as-is rather than silently patched.
type AlignmentError struct {
	Sentence string
	Index    int
	Reason   string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("align sentence %d %q: %s", e.Index+1, truncateSentence(e.Sentence), e.Reason)
}

// PackagingError reports a failure while assembling the archive.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string { return "package artifacts: " + e.Err.Error() }
func (e *PackagingError) Unwrap() error { return e.Err }

func truncateSentence(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
