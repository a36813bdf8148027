package zonestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/logging"
)

var fixedClock = instant.ClockFunc(func() time.Time {
	return time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
})

func newStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenWithClock(config.StoreConfig{
		Path:        filepath.Join(t.TempDir(), "nested", "zones.db"),
		BusyTimeout: config.Duration{Duration: time.Second},
	}, fixedClock)
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(fixedClock),
	}
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := s.Save(ctx, "Europe/Berlin", "CET-1CEST,M3.5.0,M10.5.0/3")
			require.NoError(t, err)
			assert.NotEmpty(t, rec.ID)
			assert.Equal(t, "Europe/Berlin", rec.Name)
			assert.Equal(t, "2024-03-01T12:30:00Z", rec.UpdatedAt.String())

			rules, err := s.Load(ctx, "Europe/Berlin")
			require.NoError(t, err)
			std, dst := rules.Names()
			assert.Equal(t, "CET", std)
			assert.Equal(t, "CEST", dst)

			again, err := s.Save(ctx, "Europe/Berlin", "CET-1")
			require.NoError(t, err)
			assert.Equal(t, rec.ID, again.ID)
			assert.Equal(t, "CET-1", again.POSIX)
		})
	}
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Save(ctx, "", "UTC0")
			assert.Error(t, err)
			_, err = s.Save(ctx, "Bad/Zone", "not a rule")
			assert.Error(t, err)

			list, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "Mars/Olympus")
			assert.True(t, errors.IsNotFound(err), "got %v", err)
			_, err = s.Load(ctx, "Mars/Olympus")
			assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
			assert.True(t, errors.IsNotFound(s.Delete(ctx, "Mars/Olympus")))
		})
	}
}

func TestStore_ImportListDelete(t *testing.T) {
	ctx := context.Background()
	zones := []config.ZoneConfig{
		{Name: "Asia/Tokyo", POSIX: "JST-9"},
		{Name: "America/New_York", POSIX: "EST5EDT,M3.2.0,M11.1.0"},
		{Name: "Broken", POSIX: "???"},
		{Name: "", POSIX: "UTC0"},
	}
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			accepted, rejected, err := s.Import(ctx, zones)
			require.NoError(t, err)
			assert.Equal(t, 2, accepted)
			assert.Equal(t, 2, rejected)

			list, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "America/New_York", list[0].Name)
			assert.Equal(t, "Asia/Tokyo", list[1].Name)

			require.NoError(t, s.Delete(ctx, "Asia/Tokyo"))
			list, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "America/New_York", list[0].Name)
		})
	}
}

func TestOpen_MemoryPath(t *testing.T) {
	s, err := Open(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), "UTC", "UTC0")
	require.NoError(t, err)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteStore_ImportLogsWriteFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := logging.L()
	logging.Set(zap.New(core))
	t.Cleanup(func() { logging.Set(prev) })

	s, err := OpenWithClock(config.StoreConfig{Path: filepath.Join(t.TempDir(), "zones.db")}, fixedClock)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	_, err = s.db.ExecContext(ctx, `CREATE TRIGGER refuse_mars BEFORE INSERT ON zones
		WHEN NEW.name = 'Mars/Olympus' BEGIN SELECT RAISE(ABORT, 'no zones on mars'); END`)
	require.NoError(t, err)

	accepted, rejected, err := s.Import(ctx, []config.ZoneConfig{
		{Name: "Asia/Tokyo", POSIX: "JST-9"},
		{Name: "Mars/Olympus", POSIX: "MTC0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)

	failed := logs.FilterMessage("zone not stored").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, "Mars/Olympus", fields[logging.FieldZone])
	assert.Contains(t, fields["error"], "no zones on mars")

	_, err = s.Get(ctx, "Mars/Olympus")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Get(ctx, "Asia/Tokyo")
	assert.NoError(t, err)
}
