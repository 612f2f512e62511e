package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const paramKeyBpm = "bpm"

// NoteExtraParams carries the attributes of special notes. The persisted form
// is a ';' separated list of key=value pairs; a bare decimal is the legacy
// spelling of the bpm value.
type NoteExtraParams struct {
	NewBpm float64

	// unknown keys are kept so a save does not lose data written by newer builds
	others map[string]string
	note   *Note
}

// NewExtraParams returns empty extra params bound to n.
func NewExtraParams(n *Note) *NoteExtraParams {
	return &NoteExtraParams{note: n}
}

// FromDataString parses s into fresh extra params bound to n.
func FromDataString(s string, n *Note) (*NoteExtraParams, error) {
	p := NewExtraParams(n)
	if err := p.UpdateByDataString(s); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateByDataString merges the values in s into p. Keys absent from s keep
// their current values, so applying the same string twice is a no-op.
func (p *NoteExtraParams) UpdateByDataString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if !strings.Contains(s, "=") {
		bpm, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parsing legacy bpm %q: %w", s, err)
		}
		p.NewBpm = bpm
		return nil
	}

	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("malformed extra param %q", pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == paramKeyBpm {
			bpm, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("parsing bpm %q: %w", value, err)
			}
			p.NewBpm = bpm
			continue
		}
		if p.others == nil {
			p.others = make(map[string]string)
		}
		p.others[key] = value
	}
	return nil
}

// ToDataString renders p in the persisted form with keys in a stable order.
func (p *NoteExtraParams) ToDataString() string {
	parts := []string{paramKeyBpm + "=" + strconv.FormatFloat(p.NewBpm, 'f', -1, 64)}

	keys := make([]string, 0, len(p.others))
	for k := range p.others {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+p.others[k])
	}
	return strings.Join(parts, ";")
}

// Note returns the note these params belong to.
func (p *NoteExtraParams) Note() *Note {
	return p.note
}
