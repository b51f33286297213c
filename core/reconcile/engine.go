package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps bundles the collaborators of an Engine.
type Deps struct {
	// Fetcher supplies OSM candidates.
	Fetcher Fetcher

	// Store reads instances and writes links.
	Store Store

	// OSMState re-checks OSM links before writing. When nil, Store is used
	// if it implements LinkState.
	OSMState LinkState

	// Registry backs the address pass. It may be nil when only the OSM pass runs.
	Registry AddressRegistry
}

// Engine links local map features to external features, one type at a time.
// A run is single-threaded; concurrent runs are serialized by the caller.
type Engine struct {
	cfg      Config
	types    []FeatureType
	fetcher  Fetcher
	store    Store
	osmState LinkState
	registry AddressRegistry
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine creates an engine over the given feature types.
func NewEngine(cfg Config, types []FeatureType, deps Deps, logger *zap.Logger) *Engine {
	osmState := deps.OSMState
	if osmState == nil {
		if ls, ok := deps.Store.(LinkState); ok {
			osmState = ls
		} else {
			osmState = LinkStateFunc(func(context.Context, Instance) (bool, error) { return false, nil })
		}
	}
	if cfg.FallbackRadius <= 0 {
		cfg.FallbackRadius = DefaultConfig().FallbackRadius
	}
	if cfg.AddressMaxDistance <= 0 {
		cfg.AddressMaxDistance = DefaultConfig().AddressMaxDistance
	}

	return &Engine{
		cfg:      cfg,
		types:    types,
		fetcher:  deps.Fetcher,
		store:    deps.Store,
		osmState: osmState,
		registry: deps.Registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Types returns the registered feature types.
func (e *Engine) Types() []FeatureType {
	return e.types
}

// LinkOSM runs the OSM pass.
func (e *Engine) LinkOSM(ctx context.Context, opts Options) (*RunReport, error) {
	return e.Run(ctx, KindOSM, opts)
}

// LinkAddresses runs the address pass.
func (e *Engine) LinkAddresses(ctx context.Context, opts Options) (*RunReport, error) {
	return e.Run(ctx, KindAddresses, opts)
}

// Run performs the passes selected by kind and returns the run report.
//
// A failed candidate fetch aborts only that feature type; it is logged and
// recorded in the report. Persistence errors abort the run and are returned
// together with the partial report.
func (e *Engine) Run(ctx context.Context, kind Kind, opts Options) (*RunReport, error) {
	for _, name := range opts.Types {
		if _, ok := e.lookup(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
		}
	}

	report := &RunReport{
		ID:        uuid.NewString(),
		Kind:      kind,
		DryRun:    opts.DryRun,
		StartedAt: e.now(),
		Types:     []TypeResult{},
	}

	var err error
	switch kind {
	case KindOSM:
		err = e.linkOSM(ctx, opts, report)
	case KindAddresses:
		err = e.linkAddresses(ctx, opts, report)
	case KindAll:
		if err = e.linkOSM(ctx, opts, report); err == nil {
			err = e.linkAddresses(ctx, opts, report)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	report.FinishedAt = e.now()
	e.logger.Info("Reconciliation run finished",
		zap.String("run_id", report.ID),
		zap.String("kind", string(kind)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("linked", report.Linked),
		zap.Int("failed_types", report.Failed),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report, err
}

func (e *Engine) lookup(name string) (FeatureType, bool) {
	for _, t := range e.types {
		if t.Name == name {
			return t, true
		}
	}
	return FeatureType{}, false
}

func (e *Engine) linkOSM(ctx context.Context, opts Options, report *RunReport) error {
	if e.fetcher == nil {
		return errors.New("osm pass requires a fetcher")
	}

	for _, t := range e.types {
		if !opts.includes(t.Name) {
			continue
		}
		if !t.AutoLinkable() {
			e.logger.Debug("Skipping type without OSM linking", zap.String("type", t.Name))
			continue
		}

		res, err := e.linkOSMType(ctx, t, opts)
		report.add(res)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) linkOSMType(ctx context.Context, t FeatureType, opts Options) (TypeResult, error) {
	start := e.now()
	res := TypeResult{Type: t.Name, Kind: KindOSM}

	e.logger.Info("Fetching OSM candidates", zap.String("type", t.Name), zap.String("query", t.OSMNodeQuery))
	candidates, err := e.fetcher.Fetch(ctx, t.OSMNodeQuery)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.Error = ctxErr.Error()
			return e.finish(res, start), ctxErr
		}
		e.logger.Error("Failed to fetch OSM candidates, skipping type", zap.String("type", t.Name), zap.Error(err))
		res.Error = err.Error()
		return e.finish(res, start), nil
	}

	plan, err := e.PlanOSM(ctx, t, candidates)
	if err != nil {
		res.Error = err.Error()
		return e.finish(res, start), err
	}

	return e.apply(ctx, res, plan, opts, e.osmState, e.store.LinkOSM, start)
}

func (e *Engine) linkAddresses(ctx context.Context, opts Options, report *RunReport) error {
	var types []FeatureType
	for _, t := range e.types {
		if t.SupportsAddress && opts.includes(t.Name) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil
	}
	if e.registry == nil {
		return errors.New("address pass requires an address registry")
	}

	addresses, err := e.registry.Addresses(ctx, e.cfg.City)
	if err != nil {
		return fmt.Errorf("failed to load %s addresses: %w", e.cfg.City, err)
	}
	idx := NewAddressIndex(addresses)
	state := NewAddressLinkState(idx, e.registry)
	e.logger.Info("Loaded address registry", zap.String("city", e.cfg.City), zap.Int("addresses", idx.Len()))

	for _, t := range types {
		start := e.now()
		res := TypeResult{Type: t.Name, Kind: KindAddresses}

		plan, err := e.PlanAddresses(ctx, t, idx, state)
		if err != nil {
			res.Error = err.Error()
			report.add(e.finish(res, start))
			return err
		}

		res, err = e.apply(ctx, res, plan, opts, state, e.store.LinkAddress, start)
		report.add(res)
		if err != nil {
			return err
		}
	}
	return nil
}

// apply records the plan in res and writes it unless this is a dry run.
func (e *Engine) apply(ctx context.Context, res TypeResult, plan *Plan, opts Options, state LinkState, write LinkWriter, start time.Time) (TypeResult, error) {
	res.Candidates = plan.Candidates
	res.Checked = plan.Checked
	res.Matched = len(plan.Links)
	res.Links = plan.Links

	e.logger.Info("Checking instances for unlinked matches",
		zap.String("kind", string(plan.Kind)),
		zap.String("type", plan.Type.Name),
		zap.Int("candidates", plan.Candidates),
		zap.Int("instances", plan.Checked),
		zap.Int("matched", res.Matched),
	)

	if !opts.DryRun {
		linked, skipped, err := e.ApplyPlan(ctx, plan, state, write)
		res.Linked = linked
		res.Skipped = skipped
		if err != nil {
			res.Error = err.Error()
			return e.finish(res, start), err
		}
	}

	e.logger.Info("All done",
		zap.String("kind", string(plan.Kind)),
		zap.String("type", plan.Type.Name),
		zap.Int("new_links", res.Linked),
	)
	return e.finish(res, start), nil
}

func (e *Engine) finish(res TypeResult, start time.Time) TypeResult {
	res.DurationMS = e.now().Sub(start).Milliseconds()
	return res
}
