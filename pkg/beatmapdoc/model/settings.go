package model

import "fmt"

// ScoreSettings are shared by every Score of a Project.
type ScoreSettings struct {
	GlobalBpm              float64
	StartTimeOffset        float64 // seconds before the first bar starts
	GlobalGridPerSignature int
	GlobalSignature        int
}

// DefaultScoreSettings returns the settings new projects start from: 120 BPM,
// no offset and a 24 x 4 grid.
func DefaultScoreSettings() ScoreSettings {
	return ScoreSettings{
		GlobalBpm:              120,
		StartTimeOffset:        0,
		GlobalGridPerSignature: 24,
		GlobalSignature:        4,
	}
}

// GridDensity is the number of grid slots per bar under these settings.
func (s ScoreSettings) GridDensity() int {
	return s.GlobalGridPerSignature * s.GlobalSignature
}

func (s ScoreSettings) Validate() error {
	if s.GlobalBpm <= 0 {
		return fmt.Errorf("bpm must be positive, got %v", s.GlobalBpm)
	}
	if s.GlobalGridPerSignature <= 0 {
		return fmt.Errorf("grid per signature must be positive, got %d", s.GlobalGridPerSignature)
	}
	if s.GlobalSignature <= 0 {
		return fmt.Errorf("signature must be positive, got %d", s.GlobalSignature)
	}
	return nil
}
