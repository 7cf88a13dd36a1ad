package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		mag  float64
		want Severity
	}{
		{0, SeverityLow},
		{2.49, SeverityLow},
		{2.5, SeverityModerate},
		{4.49, SeverityModerate},
		{4.5, SeverityHigh},
		{5.99, SeverityHigh},
		{6.0, SeverityCritical},
		{9.1, SeverityCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifySeverity(tc.mag), "magnitude %v", tc.mag)
	}
}

func TestMagnitudeBucket(t *testing.T) {
	assert.Equal(t, 1, MagnitudeBucket(0.3))
	assert.Equal(t, 1, MagnitudeBucket(1.9))
	assert.Equal(t, 2, MagnitudeBucket(2.0))
	assert.Equal(t, 7, MagnitudeBucket(7.8))
	assert.Equal(t, 10, MagnitudeBucket(10.0))
	assert.Equal(t, 10, MagnitudeBucket(12.4))
	assert.Equal(t, 1, MagnitudeBucket(-1.2))
	assert.Equal(t, 1, MagnitudeBucket(math.NaN()))
}

func TestFormatting(t *testing.T) {
	ts := time.Date(2016, time.March, 3, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "7.2", FormatMagnitude(7.2))
	assert.Equal(t, "6.0", FormatMagnitude(6))
	assert.Equal(t, "4.6", FormatMagnitude(4.56))
	assert.Equal(t, "Mar 03, 2016", FormatDate(ts))
	assert.Equal(t, "3:04 PM", FormatTime(ts))
}
