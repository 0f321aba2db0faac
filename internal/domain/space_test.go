package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateSpaceHours(t *testing.T) {
	tests := []struct {
		name      string
		spaceType string
		size      string
		clutter   string
		want      float64
	}{
		{
			name:      "garage large heavy",
			spaceType: "Garage Organization",
			size:      "large",
			clutter:   "heavy",
			want:      11.7, // 6 x 1.5 x 1.3
		},
		{
			name:      "pantry refresh defaults",
			spaceType: "Pantry Refresh",
			size:      "medium",
			clutter:   "moderate",
			want:      2,
		},
		{
			name:      "bathroom small light rounds to one decimal",
			spaceType: "Bathroom Storage",
			size:      "small",
			clutter:   "light",
			want:      0.8, // 1.5 x 0.7 x 0.8 = 0.84
		},
		{
			name:      "unknown type falls back to base 3",
			spaceType: "Wine Cellar",
			size:      "medium",
			clutter:   "moderate",
			want:      3,
		},
		{
			name:      "unknown size class falls back to multiplier 1",
			spaceType: "Closet Declutter",
			size:      "gigantic",
			clutter:   "extreme",
			want:      4.8,
		},
		{
			name:      "custom type has no base hours",
			spaceType: "Custom",
			size:      "xlarge",
			clutter:   "extreme",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateSpaceHours(tt.spaceType, tt.size, tt.clutter)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSpaceEffectiveHours(t *testing.T) {
	s := NewSpace()
	s.SpaceType = "Garage Organization"
	s.Size = "large"
	s.ClutterLevel = "heavy"

	// Not overridden: derived from parameters, stale stored value ignored.
	assert.InDelta(t, 11.7, s.EffectiveHours(), 1e-9)

	s.SetManualHours(8)
	assert.InDelta(t, 8, s.EffectiveHours(), 1e-9)

	// Parameter changes must not clobber a manual override.
	s.Size = "small"
	assert.InDelta(t, 8, s.EffectiveHours(), 1e-9)

	s.Rederive()
	assert.False(t, s.Hours.Manual)
	assert.InDelta(t, EstimateSpaceHours(s.SpaceType, s.Size, s.ClutterLevel), s.EffectiveHours(), 1e-9)
}

func TestSpaceHoursJSON(t *testing.T) {
	t.Run("tagged round trip", func(t *testing.T) {
		in := SpaceHours{Value: 4.5, Manual: true}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out SpaceHours
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("legacy bare number", func(t *testing.T) {
		var out SpaceHours
		require.NoError(t, json.Unmarshal([]byte(`6.5`), &out))
		assert.Equal(t, SpaceHours{Value: 6.5}, out)
	})
}

func TestNewSpaceDefaults(t *testing.T) {
	s := NewSpace()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Pantry Refresh", s.SpaceType)
	assert.Equal(t, "medium", s.Size)
	assert.Equal(t, "moderate", s.ClutterLevel)
	assert.False(t, s.Hours.Manual)
	assert.InDelta(t, 2, s.Hours.Value, 1e-9)
}
