package cmd

import (
	"context"
	"errors"
	"fmt"

	"osm-linker/core/config"
	"osm-linker/core/lock"
	"osm-linker/core/overpass"
	"osm-linker/core/reconcile"
	"osm-linker/core/storage"
	"osm-linker/feature/linking"
	"osm-linker/feature/mapfeatures"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newLinkingService wires the engine, run lock and optional report archive.
// The returned close function releases the redis connection.
func newLinkingService(ctx context.Context, cfg *config.Config, logg *zap.Logger, db *gorm.DB, archive bool) (*linking.Service, func() error, error) {
	store := mapfeatures.NewStore(db, logg)
	fetcher := overpass.NewCachedFetcher(overpass.NewClient(cfg.Overpass, logg), cfg.Overpass.CacheTTL())

	engine := reconcile.NewEngine(cfg.Linking, mapfeatures.Types(), reconcile.Deps{
		Fetcher:  fetcher,
		Store:    store,
		Registry: store,
	}, logg)

	locker, closeLock, err := lock.New(cfg.Lock)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create run lock: %w", err)
	}

	var arch *linking.Archive
	if archive {
		arch, err = newArchive(ctx, cfg.Storage)
		if err != nil {
			_ = closeLock()
			return nil, nil, err
		}
	}

	return linking.NewService(engine, locker, arch, logg), closeLock, nil
}

func newArchive(ctx context.Context, cfg storage.Config) (*linking.Archive, error) {
	if !cfg.Enabled() {
		return nil, errors.New("report archive requested but storage.endpoint is not set")
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	return linking.NewArchive(client, cfg.Bucket), nil
}
