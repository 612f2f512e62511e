package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDataStringLegacyDecimal(t *testing.T) {
	n := NewNote(NoteTypeVariantBpm, 0)
	p, err := FromDataString("150.5", n)
	require.NoError(t, err)

	assert.InDelta(t, 150.5, p.NewBpm, 1e-9)
	assert.Same(t, n, p.Note())
	assert.Equal(t, "bpm=150.5", p.ToDataString())
}

func TestNewExtraParamsIsEmpty(t *testing.T) {
	n := NewNote(NoteTypeVariantBpm, 0)
	p := NewExtraParams(n)

	assert.Same(t, n, p.Note())
	assert.Zero(t, p.NewBpm)
	assert.Equal(t, "bpm=0", p.ToDataString())
}

func TestUpdateByDataStringIsIdempotent(t *testing.T) {
	p, err := FromDataString("bpm=180;color=red", nil)
	require.NoError(t, err)
	first := p.ToDataString()

	require.NoError(t, p.UpdateByDataString(first))
	require.NoError(t, p.UpdateByDataString(first))

	assert.Equal(t, first, p.ToDataString())
	assert.Equal(t, "bpm=180;color=red", first)
}

func TestUpdateByDataStringMergesKeys(t *testing.T) {
	p, err := FromDataString("bpm=100;a=1", nil)
	require.NoError(t, err)

	require.NoError(t, p.UpdateByDataString("b=2"))

	assert.InDelta(t, 100, p.NewBpm, 1e-9)
	assert.Equal(t, "bpm=100;a=1;b=2", p.ToDataString())
}

func TestUpdateByDataStringRejectsGarbage(t *testing.T) {
	_, err := FromDataString("fast", nil)
	assert.Error(t, err)

	_, err = FromDataString("bpm=x", nil)
	assert.Error(t, err)

	_, err = FromDataString("bpm=1;oops", nil)
	assert.Error(t, err)
}

func TestVersionScaling(t *testing.T) {
	assert.Equal(t, 100, ScaleStoredVersion(0.1))
	assert.Equal(t, 301, ScaleStoredVersion(0.301))
	assert.Equal(t, 301, ScaleStoredVersion(301))

	v, exact := NearestKnownVersion(301)
	assert.Equal(t, V0_3_1, v)
	assert.True(t, exact)

	v, exact = NearestKnownVersion(250)
	assert.Equal(t, V0_2, v)
	assert.False(t, exact)

	v, exact = NearestKnownVersion(420)
	assert.Equal(t, V0_3_1, v)
	assert.False(t, exact)

	v, exact = NearestKnownVersion(7)
	assert.Equal(t, V0_1, v)
	assert.False(t, exact)
}
