package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.UnixMilli(1_700_000_000_000)

func TestToMillis_SecondsAndMillisAgree(t *testing.T) {
	s, err := ToMillis(int64(1700000000), UnitSeconds, refNow)
	require.NoError(t, err)
	ms, err := ToMillis(int64(1700000000000), UnitMillis, refNow)
	require.NoError(t, err)

	assert.Equal(t, ms, s)
}

func TestToMillis_NumericStrings(t *testing.T) {
	v, err := ToMillis("1000", UnitSeconds, refNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), v)

	v, err = ToMillis(float64(1000), UnitSeconds, refNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), v)
}

func TestToMillis_ISO8601(t *testing.T) {
	v, err := ToMillis("2023-11-14T22:13:20Z", UnitISO8601, refNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_000), v)

	v, err = ToMillis("2023-11-15T03:43:20+05:30", UnitISO8601, refNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_000), v)
}

func TestToMillis_AbsentUsesReferenceNow(t *testing.T) {
	for _, raw := range []any{nil, "", "   "} {
		v, err := ToMillis(raw, UnitSeconds, refNow)
		require.NoError(t, err)
		assert.Equal(t, refNow.UnixMilli(), v)
	}

	var missing *string
	v, err := ToMillis(missing, UnitSeconds, refNow)
	require.NoError(t, err)
	assert.Equal(t, refNow.UnixMilli(), v)
}

func TestToMillis_MalformedFallsBackWithError(t *testing.T) {
	v, err := ToMillis("12abc", UnitSeconds, refNow)
	assert.Error(t, err)
	assert.Equal(t, refNow.UnixMilli(), v)

	v, err = ToMillis("yesterday", UnitISO8601, refNow)
	assert.Error(t, err)
	assert.Equal(t, refNow.UnixMilli(), v)
}

func TestToMillis_NegativeClamped(t *testing.T) {
	v, err := ToMillis(int64(-5), UnitSeconds, refNow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestDurationMillis(t *testing.T) {
	v, err := DurationMillis("120", UnitMinutes, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7_200_000), v)

	v, err = DurationMillis(nil, UnitSeconds, Week)
	require.NoError(t, err)
	assert.Equal(t, Week, v)

	v, err = DurationMillis("n/a", UnitSeconds, Week)
	assert.Error(t, err)
	assert.Equal(t, Week, v)

	_, err = DurationMillis("1", UnitISO8601, 0)
	assert.Error(t, err)
}

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "seconds", UnitSeconds.String())
	assert.Equal(t, "millis", UnitMillis.String())
}
