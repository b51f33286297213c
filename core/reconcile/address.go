package reconcile

import (
	"context"

	"osm-linker/core/linkstate"
)

// AddressIndex resolves "{street} {housenumber}" keys to registry rows.
type AddressIndex struct {
	byKey map[string]Address
	ids   *linkstate.Set[int64]
}

// NewAddressIndex indexes addresses by key. A later row replaces an
// earlier one with the same key.
func NewAddressIndex(addresses []Address) *AddressIndex {
	idx := &AddressIndex{
		byKey: make(map[string]Address, len(addresses)),
		ids:   linkstate.NewSet[int64](),
	}
	for _, a := range addresses {
		idx.byKey[a.Key()] = a
		idx.ids.Add(a.ID)
	}
	return idx
}

// Lookup returns the registry row for an exact street address.
func (idx *AddressIndex) Lookup(streetAddress string) (Address, bool) {
	a, ok := idx.byKey[streetAddress]
	return a, ok
}

// Len returns the number of registry rows indexed.
func (idx *AddressIndex) Len() int {
	return idx.ids.Len()
}

// addressLinkState reports an instance as linked when its image note is
// already associated with any address of the indexed registry.
type addressLinkState struct {
	registered *linkstate.Set[int64]
	registry   AddressRegistry
}

// NewAddressLinkState builds the address-path LinkState over idx.
func NewAddressLinkState(idx *AddressIndex, registry AddressRegistry) LinkState {
	return &addressLinkState{registered: idx.ids, registry: registry}
}

func (s *addressLinkState) IsLinked(ctx context.Context, inst Instance) (bool, error) {
	ids, err := s.registry.NoteAddressIDs(ctx, inst.NoteID)
	if err != nil {
		return false, err
	}
	return s.registered.Any(ids), nil
}
