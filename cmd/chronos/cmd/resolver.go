package cmd

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/msto63/chronos/internal/zonecache"
	"github.com/msto63/chronos/internal/zonestore"
	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

// Source names where a resolved zone came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceConfig  Source = "config"
	SourceStore   Source = "store"
	SourceTZDB    Source = "tzdb"
	SourcePOSIX   Source = "posix"
	SourceOffset  Source = "offset"
)

var offsetItems = []format.Item{format.Fix(format.TimezoneOffsetPermissive)}

type resolved struct {
	provider zone.Provider
	source   Source
}

// Resolver turns a zone argument into a provider. Lookup order is
// builtin names, configuration, zone store, tz database, inline POSIX
// rule and finally a fixed offset. Results below the configuration are
// cached per config.StoreConfig.
type Resolver struct {
	cfg   *config.Config
	open  func() (zonestore.Store, error)
	cache *zonecache.Cache[resolved]

	mu    sync.Mutex
	store zonestore.Store
}

// NewResolver returns a resolver over cfg. open is called at most once, the
// first time the store is consulted.
func NewResolver(cfg *config.Config, clock instant.Clock, open func() (zonestore.Store, error)) *Resolver {
	cache := zonecache.New[resolved](zonecache.Config{
		MaxItems: cfg.Store.CacheSize,
		TTL:      cfg.Store.CacheTTL.Duration,
	}, clock)
	return &Resolver{cfg: cfg, open: open, cache: cache}
}

// Forget drops any cached resolution of name, after the store changed.
func (r *Resolver) Forget(name string) {
	r.cache.Delete(name)
}

// Store returns the zone store, opening it on first use.
func (r *Resolver) Store() (zonestore.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store != nil {
		return r.store, nil
	}
	if r.open == nil {
		return nil, errors.New("no zone store configured")
	}
	s, err := r.open()
	if err != nil {
		return nil, err
	}
	r.store = s
	return s, nil
}

// storeIfPresent avoids creating a database file just to look a zone up.
func (r *Resolver) storeIfPresent() zonestore.Store {
	r.mu.Lock()
	opened := r.store != nil
	r.mu.Unlock()
	if !opened && r.cfg.Store.Path != ":memory:" {
		if _, err := os.Stat(r.cfg.Store.Path); err != nil {
			return nil
		}
	}
	s, err := r.Store()
	if err != nil {
		logging.Named("resolver").Warn("zone store unavailable", zap.Error(err))
		return nil
	}
	return s
}

// Close releases the store if it was opened.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

// Resolve looks name up. An empty name selects the configured default zone.
func (r *Resolver) Resolve(ctx context.Context, name string) (zone.Provider, Source, error) {
	if name == "" {
		name = r.cfg.General.DefaultZone
	}
	log := logging.Named("resolver").With(zap.String(logging.FieldZone, name))

	switch strings.ToLower(name) {
	case "utc", "z":
		return zone.UTC, SourceBuiltin, nil
	case "local":
		return zone.SystemLocal(), SourceBuiltin, nil
	}

	if rules, ok := r.cfg.Provider(name); ok {
		log.Debug("zone from config")
		return rules, SourceConfig, nil
	}

	res, err := r.cache.GetOrSet(name, func() (resolved, error) {
		p, source, err := r.lookup(ctx, name)
		return resolved{p, source}, err
	})
	if err != nil {
		return nil, "", err
	}
	return res.provider, res.source, nil
}

func (r *Resolver) lookup(ctx context.Context, name string) (zone.Provider, Source, error) {
	log := logging.Named("resolver").With(zap.String(logging.FieldZone, name))

	if s := r.storeIfPresent(); s != nil {
		rules, err := s.Load(ctx, name)
		switch {
		case err == nil:
			log.Debug("zone from store")
			return rules, SourceStore, nil
		case !errors.IsNotFound(err):
			return nil, "", err
		}
	}

	if loc, err := zone.LoadLocation(name); err == nil {
		log.Debug("zone from tz database")
		return loc, SourceTZDB, nil
	}

	if rules, err := zone.ParsePOSIX(name); err == nil {
		return rules, SourcePOSIX, nil
	}

	var p format.Parsed
	if err := format.Parse(&p, name, offsetItems); err == nil {
		if off, err := p.ToOffset(); err == nil {
			return off, SourceOffset, nil
		}
	}

	return nil, "", errors.WithHint(
		errors.Wrapf(zone.ErrUnknownZone, "%q", name),
		"use a tz database name, a POSIX rule such as CET-1CEST,M3.5.0,M10.5.0/3, an offset such as +05:30, or add it with 'chronos zones add'")
}
