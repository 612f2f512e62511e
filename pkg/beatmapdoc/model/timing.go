package model

import "slices"

type bpmChange struct {
	index int
	bpm   float64
}

// UpdateTimings recomputes every bar's start/end time and every note's hit
// timing from the global settings and the variant BPM notes. It must run after
// any change to the bar count, the settings or a variant BPM note.
func (s *Score) UpdateTimings() {
	settings := s.Settings()
	t := settings.StartTimeOffset
	bpm := settings.GlobalBpm

	for _, b := range s.bars {
		b.StartTime = t
		b.StartBpm = bpm
		b.bpmChanges = b.bpmChanges[:0]
		for _, n := range b.notes {
			if n.Type == NoteTypeVariantBpm && n.ExtraParams != nil && n.ExtraParams.NewBpm > 0 {
				b.bpmChanges = append(b.bpmChanges, bpmChange{index: n.IndexInGrid, bpm: n.ExtraParams.NewBpm})
			}
		}
		slices.SortStableFunc(b.bpmChanges, func(x, y bpmChange) int { return x.index - y.index })
		if len(b.bpmChanges) > 0 {
			bpm = b.bpmChanges[len(b.bpmChanges)-1].bpm
		}
		b.EndTime = b.TimeAt(b.GridDensity())
		t = b.EndTime
	}

	for _, n := range s.notes {
		n.HitTiming = n.bar.TimeAt(n.IndexInGrid)
	}
}

// TimeAt returns the absolute time of grid slot index within the bar, using
// the timings of the last UpdateTimings call.
func (b *Bar) TimeAt(index int) float64 {
	bpm := b.StartBpm
	if bpm <= 0 {
		bpm = b.score.project.Settings.GlobalBpm
	}
	secondsPerSlot := func(bpm float64) float64 {
		return float64(b.Signature()) / float64(b.GridDensity()) * 60 / bpm
	}

	t := b.StartTime
	cur := 0
	for _, c := range b.bpmChanges {
		if c.index >= index {
			break
		}
		t += float64(c.index-cur) * secondsPerSlot(bpm)
		cur = c.index
		bpm = c.bpm
	}
	return t + float64(index-cur)*secondsPerSlot(bpm)
}
