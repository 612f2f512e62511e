// Package music inspects the audio file a project refers to.
package music

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/wav"
)

var ErrNotWAV = errors.New("not a valid WAV file")

type Metadata struct {
	Path       string
	Duration   time.Duration
	SampleRate int
	Channels   int
	BitDepth   int
}

// ResolvePath turns the music file name stored in a document into a path.
// Relative names are taken relative to the document's directory.
func ResolvePath(documentPath, musicFileName string) string {
	if musicFileName == "" || filepath.IsAbs(musicFileName) {
		return musicFileName
	}
	return filepath.Join(filepath.Dir(documentPath), musicFileName)
}

// ReadMetadata reads the header of a WAV file.
func ReadMetadata(path string) (*Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening music file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrNotWAV, path)
	}

	duration, err := decoder.Duration()
	if err != nil {
		return nil, fmt.Errorf("reading duration of %s: %w", path, err)
	}

	return &Metadata{
		Path:       path,
		Duration:   duration,
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
	}, nil
}
