package reconcile

import (
	"context"
	"fmt"

	"osm-linker/core/spatial"

	"go.uber.org/zap"
)

// PlannedLink is a link the engine intends to write.
type PlannedLink struct {
	InstanceID int64   `json:"instance_id"`
	NoteID     int64   `json:"note_id"`
	ExternalID int64   `json:"external_id"`
	DistanceM  float64 `json:"distance_m"`
	Fallback   bool    `json:"fallback,omitempty"`

	Instance Instance `json:"-"`
}

// Plan holds the matches computed for one feature type.
// Nothing is written until it is passed to ApplyPlan.
type Plan struct {
	Type       FeatureType
	Kind       Kind
	Candidates int
	Checked    int
	Links      []PlannedLink
}

// LinkWriter persists one planned link and reports whether it was new.
type LinkWriter func(ctx context.Context, inst Instance, externalID int64) (bool, error)

// PlanOSM matches the unlinked, processed instances of t against candidates.
func (e *Engine) PlanOSM(ctx context.Context, t FeatureType, candidates []spatial.Candidate) (*Plan, error) {
	instances, err := e.store.Instances(ctx, t.Name, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s instances: %w", t.Name, err)
	}

	plan := &Plan{Type: t, Kind: KindOSM, Candidates: len(candidates), Checked: len(instances)}
	if len(candidates) == 0 || len(instances) == 0 {
		return plan, nil
	}

	idx := spatial.New(candidates)
	for _, inst := range instances {
		m, ok := Match(idx, inst, t, e.cfg.FallbackRadius)
		if !ok {
			continue
		}
		plan.Links = append(plan.Links, PlannedLink{
			InstanceID: inst.ID,
			NoteID:     inst.NoteID,
			ExternalID: m.Candidate.ID,
			DistanceM:  m.Distance,
			Fallback:   m.Fallback,
			Instance:   inst,
		})
	}

	return plan, nil
}

// PlanAddresses matches the processed instances of t against the registry
// by exact street address, keeping matches closer than the address bound.
// Instances whose note already has a registry address are left out.
func (e *Engine) PlanAddresses(ctx context.Context, t FeatureType, idx *AddressIndex, state LinkState) (*Plan, error) {
	instances, err := e.store.Instances(ctx, t.Name, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s instances: %w", t.Name, err)
	}

	plan := &Plan{Type: t, Kind: KindAddresses, Candidates: idx.Len(), Checked: len(instances)}
	for _, inst := range instances {
		addr, ok := idx.Lookup(inst.StreetAddress())
		if !ok {
			continue
		}

		linked, err := state.IsLinked(ctx, inst)
		if err != nil {
			return nil, fmt.Errorf("failed to check address links of note %d: %w", inst.NoteID, err)
		}
		if linked {
			continue
		}

		d := spatial.Distance(inst.Position, addr.Position())
		if d >= e.cfg.AddressMaxDistance {
			continue
		}
		plan.Links = append(plan.Links, PlannedLink{
			InstanceID: inst.ID,
			NoteID:     inst.NoteID,
			ExternalID: addr.ID,
			DistanceM:  d,
			Instance:   inst,
		})
	}

	return plan, nil
}

// ApplyPlan writes the planned links in order. Each instance is re-checked
// against state first, so a link created since planning is skipped rather
// than duplicated. It returns how many links were new and how many were
// skipped, stopping at the first persistence error.
func (e *Engine) ApplyPlan(ctx context.Context, plan *Plan, state LinkState, write LinkWriter) (linked, skipped int, err error) {
	for _, l := range plan.Links {
		already, err := state.IsLinked(ctx, l.Instance)
		if err != nil {
			return linked, skipped, fmt.Errorf("failed to check link state of %s %d: %w", plan.Type.Name, l.InstanceID, err)
		}
		if already {
			skipped++
			continue
		}

		added, err := write(ctx, l.Instance, l.ExternalID)
		if err != nil {
			return linked, skipped, fmt.Errorf("failed to link %s %d to %d: %w", plan.Type.Name, l.InstanceID, l.ExternalID, err)
		}
		if !added {
			skipped++
			continue
		}

		linked++
		e.logger.Info("Linked feature",
			zap.String("kind", string(plan.Kind)),
			zap.String("type", plan.Type.Name),
			zap.Int64("external_id", l.ExternalID),
			zap.Int64("note_id", l.NoteID),
			zap.Float64("distance_m", l.DistanceM),
		)
	}

	return linked, skipped, nil
}
