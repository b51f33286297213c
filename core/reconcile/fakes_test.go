package reconcile

import (
	"context"
	"sync"

	"osm-linker/core/spatial"

	"github.com/stretchr/testify/mock"
)

// mockFetcher is a testify mock of Fetcher.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error) {
	args := m.Called(ctx, filter)
	candidates, _ := args.Get(0).([]spatial.Candidate)
	return candidates, args.Error(1)
}

// memFeature is one stored instance with its link columns.
type memFeature struct {
	inst      Instance
	processed bool
	osmID     *int64
}

// memStore is an in-memory Store, LinkState and AddressRegistry.
type memStore struct {
	mu            sync.Mutex
	features      []*memFeature
	addresses     map[string][]Address
	noteAddresses map[int64][]int64
	noteOSM       map[int64][]int64

	loadErr  error
	linkErr  error
	osmLinks int
}

func newMemStore() *memStore {
	return &memStore{
		addresses:     make(map[string][]Address),
		noteAddresses: make(map[int64][]int64),
		noteOSM:       make(map[int64][]int64),
	}
}

func (s *memStore) add(inst Instance, processed bool) *memFeature {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &memFeature{inst: inst, processed: processed}
	s.features = append(s.features, f)
	return f
}

func (s *memStore) find(inst Instance) *memFeature {
	for _, f := range s.features {
		if f.inst.Type == inst.Type && f.inst.ID == inst.ID {
			return f
		}
	}
	return nil
}

func (s *memStore) Instances(ctx context.Context, featureType string, unlinkedOnly bool) ([]Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var out []Instance
	for _, f := range s.features {
		if f.inst.Type != featureType || !f.processed {
			continue
		}
		if unlinkedOnly && f.osmID != nil {
			continue
		}
		out = append(out, f.inst)
	}
	return out, nil
}

func (s *memStore) LinkOSM(ctx context.Context, inst Instance, osmID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linkErr != nil {
		return false, s.linkErr
	}
	f := s.find(inst)
	if f == nil || f.osmID != nil {
		return false, nil
	}
	id := osmID
	f.osmID = &id
	s.noteOSM[inst.NoteID] = append(s.noteOSM[inst.NoteID], osmID)
	s.osmLinks++
	return true, nil
}

func (s *memStore) IsLinked(ctx context.Context, inst Instance) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.find(inst)
	return f != nil && f.osmID != nil, nil
}

func (s *memStore) LinkAddress(ctx context.Context, inst Instance, addressID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linkErr != nil {
		return false, s.linkErr
	}
	for _, id := range s.noteAddresses[inst.NoteID] {
		if id == addressID {
			return false, nil
		}
	}
	s.noteAddresses[inst.NoteID] = append(s.noteAddresses[inst.NoteID], addressID)
	return true, nil
}

func (s *memStore) Addresses(ctx context.Context, city string) ([]Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addresses[city], nil
}

func (s *memStore) NoteAddressIDs(ctx context.Context, noteID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.noteAddresses[noteID]...), nil
}
