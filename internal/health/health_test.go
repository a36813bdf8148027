package health

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chronos/internal/zonestore"
	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
)

var testClock = instant.ClockFunc(func() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
})

func result(status Status) func(context.Context) CheckResult {
	return func(context.Context) CheckResult { return CheckResult{Status: status} }
}

func TestRegistry_Check(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unknown counts as degraded", []Status{StatusHealthy, ""}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("1.0.0", testClock)
			for i, s := range tt.statuses {
				r.RegisterFunc(string(rune('a'+i)), result(s))
			}
			report := r.CheckWithTimeout(time.Second)
			assert.Equal(t, tt.want, report.Status)
			require.Len(t, report.Checks, len(tt.statuses))
			for i, c := range report.Checks {
				assert.Equal(t, string(rune('a'+i)), c.Name, "sorted by name")
				assert.Equal(t, "2024-03-01T12:00:00Z", c.Timestamp.String())
			}
		})
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry("1.0.0", testClock)
	r.RegisterFunc("bad", result(StatusUnhealthy))
	r.Unregister("bad")
	report := r.Check(context.Background())
	assert.Equal(t, StatusHealthy, report.Status)
	assert.Equal(t, "Version: 1.0.0, Status: healthy, Checks: 0", report.String())
}

func TestConsistencyCheck(t *testing.T) {
	cfg, err := config.LoadFromString(`
[[zones]]
name = "Europe/Berlin"
posix = "CET-1CEST,M3.5.0,M10.5.0/3"

[[zones]]
name = "Asia/Tokyo"
posix = "JST-8"

[[zones]]
name = "Office"
posix = "UTC0"
`, config.FormatTOML)
	require.NoError(t, err)

	res := ConsistencyCheck(cfg, 2023).Check(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Equal(t, "1 of 2 zone(s) disagree with the tz database", res.Message)
	assert.Contains(t, res.Details["Asia/Tokyo"], "+08:00")
	assert.NotContains(t, res.Details, "Europe/Berlin")
}

func TestStoreCheck(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{Path: filepath.Join(t.TempDir(), "zones.db")}
	open := func() (zonestore.Store, error) { return zonestore.OpenWithClock(cfg, testClock) }

	res := StoreCheck(cfg, open).Check(ctx)
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "no store yet", res.Message)

	s, err := open()
	require.NoError(t, err)
	_, err = s.Save(ctx, "Asia/Tokyo", "JST-9")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	res = StoreCheck(cfg, open).Check(ctx)
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "1", res.Details["zones"])

	broken := func() (zonestore.Store, error) { return nil, errors.New("locked") }
	res = StoreCheck(cfg, broken).Check(ctx)
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Equal(t, "locked", res.Details["error"])
}

func TestTZDBCheck(t *testing.T) {
	res := TZDBCheck("Europe/Berlin").Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)

	res = TZDBCheck("Mars/Olympus").Check(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.NotEmpty(t, res.Details["error"])
}

func TestConfigAndLocalCheck(t *testing.T) {
	res := ConfigCheck(config.Default()).Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "0 zone(s) configured, default UTC", res.Message)

	res = LocalCheck().Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)
}
