package health

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/msto63/chronos/internal/zonestore"
	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/zone"
)

// ConfigCheck reports the configured zones. Configuration is validated on
// load, so a loaded config is always healthy.
func ConfigCheck(cfg *config.Config) Checker {
	return NewChecker("config", func(ctx context.Context) CheckResult {
		return CheckResult{
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%d zone(s) configured, default %s", len(cfg.Zones), cfg.General.DefaultZone),
			Details: map[string]string{"precision": cfg.General.Precision},
		}
	})
}

// TZDBCheck verifies that the tz database can be read by loading probe.
func TZDBCheck(probe string) Checker {
	return NewChecker("tzdb", func(ctx context.Context) CheckResult {
		loc, err := zone.LoadLocation(probe)
		if err != nil {
			return CheckResult{
				Status:  StatusDegraded,
				Message: "tz database unavailable; only configured, stored and fixed zones resolve",
				Details: map[string]string{"error": err.Error()},
			}
		}
		return CheckResult{Status: StatusHealthy, Message: "loaded " + loc.String()}
	})
}

// StoreCheck opens the zone store when its database exists and counts the
// stored zones.
func StoreCheck(cfg config.StoreConfig, open func() (zonestore.Store, error)) Checker {
	return NewChecker("store", func(ctx context.Context) CheckResult {
		details := map[string]string{"path": cfg.Path}
		if _, err := os.Stat(cfg.Path); err != nil {
			return CheckResult{Status: StatusHealthy, Message: "no store yet", Details: details}
		}
		s, err := open()
		if err != nil {
			details["error"] = err.Error()
			return CheckResult{Status: StatusUnhealthy, Message: "cannot open store", Details: details}
		}
		records, err := s.List(ctx)
		if err != nil {
			details["error"] = err.Error()
			return CheckResult{Status: StatusUnhealthy, Message: "cannot list zones", Details: details}
		}
		bad := 0
		for _, r := range records {
			if _, err := r.Rules(); err != nil {
				bad++
			}
		}
		details["zones"] = strconv.Itoa(len(records))
		if bad > 0 {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%d stored zone(s) no longer parse", bad),
				Details: details,
			}
		}
		return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d zone(s) stored", len(records)), Details: details}
	})
}

// ConsistencyCheck compares configured zones that share a name with a tz
// database zone at the first day of every month of year. Disagreement
// means the POSIX rule is stale or wrong.
func ConsistencyCheck(cfg *config.Config, year int) Checker {
	return NewChecker("consistency", func(ctx context.Context) CheckResult {
		details := map[string]string{}
		compared := 0
		for _, name := range cfg.ZoneNames() {
			rules, ok := cfg.Provider(name)
			if !ok {
				continue
			}
			loc, err := zone.LoadLocation(name)
			if err != nil {
				continue
			}
			compared++
			if at, ok := firstMismatch(rules, loc, year); ok {
				details[name] = fmt.Sprintf("%s: rule %s, tzdb %s", at, rules.OffsetForUTC(at), loc.OffsetForUTC(at))
			}
		}
		if len(details) > 0 {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%d of %d zone(s) disagree with the tz database", len(details), compared),
				Details: details,
			}
		}
		return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d zone(s) match the tz database", compared)}
	})
}

func firstMismatch(a, b zone.Provider, year int) (civil.DateTime, bool) {
	for m := 1; m <= 12; m++ {
		at, ok := civil.DateTimeOf(year, civil.Month(m), 1, 12, 0, 0, 0)
		if !ok {
			continue
		}
		if a.OffsetForUTC(at) != b.OffsetForUTC(at) {
			return at, true
		}
	}
	return civil.DateTime{}, false
}

// LocalCheck reports the zone of the operating system.
func LocalCheck() Checker {
	return NewChecker("local", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "system zone " + zone.SystemLocal().String()}
	})
}
