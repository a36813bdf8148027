package civil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_Constructors(t *testing.T) {
	assert.Equal(t, int64(14), Weeks(2).Days())
	assert.Equal(t, int64(48), Days(2).Hours())
	assert.Equal(t, int64(90), FromStd(90*time.Minute).Minutes())
	assert.Equal(t, int64(3_661), Seconds(3_661).Seconds())
	assert.Equal(t, int64(1_500), Milliseconds(1_500).Milliseconds())

	us, ok := Microseconds(-2_500_001).Microseconds()
	require.True(t, ok)
	assert.Equal(t, int64(-2_500_001), us)

	ns, ok := Nanoseconds(math.MinInt64).Nanoseconds()
	require.True(t, ok)
	assert.Equal(t, int64(math.MinInt64), ns)
}

func TestDuration_Overflow(t *testing.T) {
	_, ok := TryDays(math.MaxInt64)
	assert.False(t, ok)
	_, ok = TryWeeks(math.MinInt64)
	assert.False(t, ok)
	_, ok = TrySeconds(MaxDuration.secs)
	assert.True(t, ok)
	_, ok = TrySeconds(MaxDuration.secs + 1)
	assert.False(t, ok)
	_, ok = TryMilliseconds(math.MinInt64)
	assert.False(t, ok)

	_, ok = MaxDuration.Add(Nanoseconds(1))
	assert.False(t, ok)
	_, ok = MinDuration.Sub(Nanoseconds(1))
	assert.False(t, ok)

	assert.Panics(t, func() { Days(math.MaxInt64) })
	assert.NotPanics(t, func() { Days(1 << 20) })
}

func TestDuration_Bounds(t *testing.T) {
	assert.Equal(t, MaxDuration, MinDuration.Neg())
	assert.Equal(t, MinDuration, MaxDuration.Neg())
	assert.Equal(t, int64(math.MaxInt64), MaxDuration.Milliseconds())
	assert.Equal(t, int64(-math.MaxInt64), MinDuration.Milliseconds())

	_, ok := MaxDuration.Nanoseconds()
	assert.False(t, ok)
	_, ok = MaxDuration.Microseconds()
	assert.False(t, ok)
}

func TestDuration_NegativeDecomposition(t *testing.T) {
	d := Milliseconds(-1_500)
	assert.Equal(t, int64(-1), d.Seconds())
	assert.Equal(t, int32(-500_000_000), d.SubsecNanos())
	assert.Equal(t, Milliseconds(1_500), d.Abs())
	assert.Equal(t, Milliseconds(1_500), d.Neg())
}

func TestDuration_Arithmetic(t *testing.T) {
	sum, ok := Seconds(1).Add(Milliseconds(-1_500))
	require.True(t, ok)
	assert.Equal(t, Milliseconds(-500), sum)

	diff, ok := Minutes(1).Sub(Seconds(61))
	require.True(t, ok)
	assert.Equal(t, Seconds(-1), diff)

	assert.Equal(t, -1, Seconds(-1).Compare(Nanoseconds(0)))
	assert.Equal(t, 1, Nanoseconds(1).Compare(Duration{}))
	assert.True(t, Nanoseconds(0).IsZero())
}

func TestDuration_Std(t *testing.T) {
	std, ok := Milliseconds(1_500).Std()
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, std)

	_, ok = Days(365 * 300).Std()
	assert.False(t, ok)
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Duration{}, "PT0S"},
		{Seconds(3_661), "PT3661S"},
		{Days(1), "P1D"},
		{mustAdd(Days(1), Milliseconds(1_500)), "P1DT1.5S"},
		{Seconds(-1), "-PT1S"},
		{Milliseconds(-1_500), "-PT1.5S"},
		{Nanoseconds(1), "PT0.000000001S"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func mustAdd(a, b Duration) Duration {
	d, ok := a.Add(b)
	if !ok {
		panic("overflow")
	}
	return d
}
