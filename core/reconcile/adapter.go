package reconcile

import (
	"context"
	"errors"

	"osm-linker/core/spatial"
)

var (
	// ErrUnknownType is returned when a run names a feature type that is not registered.
	ErrUnknownType = errors.New("unknown feature type")
	// ErrUnknownKind is returned for an unsupported run kind.
	ErrUnknownKind = errors.New("unknown run kind, expected osm, addresses or all")
)

// Fetcher returns the external OSM nodes matching a tag filter.
// Implementations must return an empty slice, not an error, when nothing matches.
type Fetcher interface {
	Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error)
}

// Store is the persistence side of reconciliation. It reads local map
// features and writes links; it never modifies feature content.
type Store interface {
	// Instances returns the instances of featureType whose image note has
	// been processed. With unlinkedOnly set, instances that already carry an
	// OSM link are excluded.
	Instances(ctx context.Context, featureType string, unlinkedOnly bool) ([]Instance, error)

	// LinkOSM idempotently links inst to the OSM node osmID, registering
	// the node and associating it with the instance's image note.
	// It returns false when the instance was already linked.
	LinkOSM(ctx context.Context, inst Instance, osmID int64) (bool, error)

	// LinkAddress idempotently associates the instance's image note with a
	// registry address. It returns false when the association already existed.
	LinkAddress(ctx context.Context, inst Instance, addressID int64) (bool, error)
}

// AddressRegistry reads the official address registry and the addresses
// already associated with image notes.
type AddressRegistry interface {
	// Addresses returns every registry row of city.
	Addresses(ctx context.Context, city string) ([]Address, error)

	// NoteAddressIDs returns the address ids associated with an image note.
	NoteAddressIDs(ctx context.Context, noteID int64) ([]int64, error)
}

// LinkState answers whether a local instance is already linked.
type LinkState interface {
	IsLinked(ctx context.Context, inst Instance) (bool, error)
}

// LinkStateFunc adapts a function to LinkState.
type LinkStateFunc func(ctx context.Context, inst Instance) (bool, error)

// IsLinked calls f.
func (f LinkStateFunc) IsLinked(ctx context.Context, inst Instance) (bool, error) {
	return f(ctx, inst)
}
