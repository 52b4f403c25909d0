package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/model"
)

func pt(lon, lat float64) *orb.Point {
	p := orb.Point{lon, lat}
	return &p
}

func TestLocator_Nearby(t *testing.T) {
	regions := newTestRegions(t)
	records := []model.LanguageRecord{
		{ID: "jpn", DisplayName: "Japanese", Center: pt(139.69, 35.68)},
		{ID: "kor", DisplayName: "Korean", Center: pt(126.98, 37.57)},
		{ID: "eng", DisplayName: "English", Center: pt(-0.13, 51.51)},
		{ID: "alf", DisplayName: "Alphan", Countries: []string{"AA"}},
		{ID: "nowhere", DisplayName: "Nowhere"},
	}
	l, err := NewLocator(records, regions, 3)
	require.NoError(t, err)

	got, err := l.Nearby(35.68, 139.69, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jpn", got[0].ID)
	assert.Less(t, got[0].DistanceM, 1000.0)

	// Alphan has no center of its own and is placed at its country's bound center
	got, err = l.Nearby(5, 5, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alf", got[0].ID)

	got, err = l.Nearby(-45, -120, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLocator_InvalidRings(t *testing.T) {
	l, err := NewLocator(nil, nil, 3)
	require.NoError(t, err)

	_, err = l.Nearby(0, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidRings)
	_, err = l.Nearby(0, 0, MaxRings+1)
	assert.ErrorIs(t, err, ErrInvalidRings)
}

func TestCenterOf(t *testing.T) {
	regions := newTestRegions(t)

	c, ok := CenterOf(&model.LanguageRecord{Center: pt(1, 2)}, regions)
	require.True(t, ok)
	assert.Equal(t, orb.Point{1, 2}, c)

	c, ok = CenterOf(&model.LanguageRecord{Countries: []string{"BB"}}, regions)
	require.True(t, ok)
	assert.Equal(t, orb.Point{25, 5}, c)

	_, ok = CenterOf(&model.LanguageRecord{Countries: []string{"BB"}}, nil)
	assert.False(t, ok)
	_, ok = CenterOf(&model.LanguageRecord{Countries: []string{"ZZ"}}, regions)
	assert.False(t, ok)
}
