package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPlace(t *testing.T) {
	t.Run("relative place", func(t *testing.T) {
		loc := SplitPlace("5km N of Cairo, Egypt")

		assert.Equal(t, "5km N of", loc.Offset)
		assert.Equal(t, "Cairo, Egypt", loc.Primary)
		assert.Equal(t, 5.0, loc.Distance)
		assert.Equal(t, "N", loc.Direction)
		assert.Equal(t, "5km N of Cairo, Egypt", loc.Raw)
	})

	t.Run("fractional distance and three-letter compass", func(t *testing.T) {
		loc := SplitPlace("12.5km WSW of Rumoi, Japan")

		assert.Equal(t, "12.5km WSW of", loc.Offset)
		assert.Equal(t, "Rumoi, Japan", loc.Primary)
		assert.Equal(t, 12.5, loc.Distance)
		assert.Equal(t, "WSW", loc.Direction)
	})

	t.Run("non-numeric offset still splits", func(t *testing.T) {
		loc := SplitPlace("South of the Fiji Islands")

		assert.Equal(t, "South of", loc.Offset)
		assert.Equal(t, "the Fiji Islands", loc.Primary)
		assert.Zero(t, loc.Distance)
		assert.Empty(t, loc.Direction)
	})

	t.Run("no separator", func(t *testing.T) {
		loc := SplitPlace("Pacific-Antarctic Ridge")

		assert.Equal(t, DefaultOffset, loc.Offset)
		assert.Equal(t, "Pacific-Antarctic Ridge", loc.Primary)
	})

	t.Run("empty", func(t *testing.T) {
		loc := SplitPlace("   ")

		assert.Equal(t, DefaultOffset, loc.Offset)
		assert.Empty(t, loc.Primary)
	})
}

func TestEarthquake_Location(t *testing.T) {
	eq := Earthquake{Place: "88km S of Whites City, New Mexico"}

	loc := eq.Location()
	assert.Equal(t, "88km S of", loc.Offset)
	assert.Equal(t, "Whites City, New Mexico", loc.Primary)
}
