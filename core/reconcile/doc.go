// Package reconcile links locally authored map features to the external
// features they describe: OpenStreetMap nodes, or rows of the official
// address registry.
//
// # Architecture
//
// A run walks the registered feature types one at a time:
//
// 1. OSM pass: types that declare a node query and required tags fetch their
// candidates through a Fetcher, index them with spatial.Index, and match
// each processed, unlinked instance with Match (nearest candidate first,
// then a small fallback radius).
//
// 2. Address pass: types carrying street and housenumber look the instance
// up in the registry by exact "{street} {housenumber}" key and accept the
// row when it lies within the address distance bound.
//
// Both passes build a Plan first and write it with ApplyPlan, which
// re-checks LinkState before every write. Dry runs stop after planning.
// Writes go through the Store and are idempotent, so re-running the engine
// over unchanged data creates no new links.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(cfg.Linking, mapfeatures.Types(), reconcile.Deps{
//	    Fetcher:  overpass.NewClient(cfg.Overpass, logger),
//	    Store:    store,
//	    Registry: store,
//	}, logger)
//
//	report, err := engine.Run(ctx, reconcile.KindAll, reconcile.Options{})
package reconcile
