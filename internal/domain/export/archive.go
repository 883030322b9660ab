// Package export assembles the downloadable artifacts for one result
// bundle: the ZIP archive of transcript, per-sentence WAV clips, and
// timing metadata, plus the self-contained inline audio players.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/clapstudio/speechsplit/internal/types"
)

// Archive builds the complete ZIP for a bundle in memory. Entry layout
// is fixed for reproducibility: the transcript first, then one WAV per
// sentence in transcript order, then the metadata report. Nothing is
// cached; every call re-encodes from the bundle.
func Archive(b types.Bundle) ([]byte, error) {
	// Clip encoding is independent per sentence, so it runs in
	// parallel. Entries are still written in transcript order.
	wavs := make([][]byte, len(b.AudioSentences))
	var eg errgroup.Group
	for i, as := range b.AudioSentences {
		i, as := i, as
		eg.Go(func() error {
			data, err := as.Clip.WAV()
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i+1, err)
			}
			wavs[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, &types.PackagingError{Err: err}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeEntry(zw, b.Title+"_transcript.txt", []byte(b.Text)); err != nil {
		return nil, &types.PackagingError{Err: err}
	}

	used := make(map[string]bool, len(b.AudioSentences))
	for i, as := range b.AudioSentences {
		name := SafeName(as.Text)
		// Identical 50-char prefixes would silently overwrite each
		// other; the 1-based ordinal keeps entries distinct.
		if used[name] {
			name = fmt.Sprintf("%s_%03d", name, i+1)
		}
		used[name] = true

		if err := writeEntry(zw, name+".wav", wavs[i]); err != nil {
			return nil, &types.PackagingError{Err: err}
		}
	}

	if err := writeEntry(zw, b.Title+"_metadata.txt", []byte(Metadata(b))); err != nil {
		return nil, &types.PackagingError{Err: err}
	}
	if err := zw.Close(); err != nil {
		return nil, &types.PackagingError{Err: err}
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
