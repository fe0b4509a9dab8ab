package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassFilter(t *testing.T) {
	tests := []struct {
		in   string
		want ClassFilter
	}{
		{"active", ClassActive},
		{"UPCOMING", ClassUpcoming},
		{" all ", ClassAll},
	}
	for _, tt := range tests {
		got, err := ParseClassFilter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseClassFilter("past")
	assert.Error(t, err)
}

func TestClassFilter_Status(t *testing.T) {
	s, ok := ClassActive.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusActive, s)

	s, ok = ClassUpcoming.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusUpcoming, s)

	_, ok = ClassAll.Status()
	assert.False(t, ok)
}

func TestContestRecord_Degraded(t *testing.T) {
	c := ContestRecord{StartTime: 1000, Duration: 0}
	assert.True(t, c.IsDegraded())
	assert.Equal(t, int64(1000), c.EndTime())

	c.Duration = 60000
	assert.False(t, c.IsDegraded())
	assert.Equal(t, int64(61000), c.EndTime())
}

func TestContestKey(t *testing.T) {
	assert.Equal(t, "codeforces:5", ContestKey("Codeforces", "5"))
}
