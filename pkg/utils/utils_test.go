package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	// Ben Thanh Market to Notre-Dame Cathedral, Saigon: roughly 1.1km.
	d := HaversineMeters(10.7725, 106.6980, 10.7798, 106.6990)
	assert.InDelta(t, 1100, d, 150)

	assert.Zero(t, HaversineMeters(10.7725, 106.6980, 10.7725, 106.6980))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(91, 0))
	assert.False(t, ValidCoordinates(0, -181))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "cafe istanbul", NormalizeName("  Cafe Istanbul "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("cafe", "cafe"))
	assert.Equal(t, 1, LevenshteinDistance("cafe", "café"))
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 4, LevenshteinDistance("", "cafe"))
}

func TestTimeOfDayBucket(t *testing.T) {
	cases := map[int]string{
		7:  "morning",
		12: "lunch",
		15: "afternoon",
		19: "evening",
		23: "night",
		3:  "night",
	}
	for hour, want := range cases {
		got := TimeOfDayBucket(time.Date(2026, 8, 28, hour, 0, 0, 0, time.UTC))
		assert.Equal(t, want, got, "hour %d", hour)
	}
}

func TestUTCDayKey(t *testing.T) {
	// The key follows UTC, not the local zone of the timestamp.
	late := time.Date(2026, 8, 28, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	assert.Equal(t, "2026-08-28", UTCDayKey(late.UTC()))

	a := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 8, 29, 0, 1, 0, 0, time.UTC)
	assert.False(t, SameUTCDay(a, b))
}
