package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// fixedAt builds the instant whose wall-clock reading at offset east is the
// given components.
func fixedAt(t *testing.T, east int, year int, month civil.Month, day, hour, min, sec, nano int) instant.Instant[zone.Offset] {
	t.Helper()
	off, ok := zone.East(east)
	require.True(t, ok)
	dt, ok := civil.DateTimeOf(year, month, day, hour, min, sec, nano)
	require.True(t, ok, "invalid wall clock reading")
	i, ok := instant.FromLocal(dt, off).Single()
	require.True(t, ok)
	return i
}
