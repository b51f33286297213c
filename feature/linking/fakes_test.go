package linking

import (
	"context"
	"sync"

	"osm-linker/core/osmtags"
	"osm-linker/core/reconcile"
	"osm-linker/core/spatial"

	"go.uber.org/zap"
)

var entranceType = reconcile.FeatureType{
	Name:         "entrance",
	OSMNodeQuery: "entrance",
	RequiredTags: []string{"entrance"},
	MaxDistance:  5,
}

type staticFetcher []spatial.Candidate

func (f staticFetcher) Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error) {
	return f, nil
}

// oneStore holds a single entrance on a processed note.
type oneStore struct {
	mu    sync.Mutex
	osmID *int64
}

func (s *oneStore) Instances(ctx context.Context, featureType string, unlinkedOnly bool) ([]reconcile.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if featureType != entranceType.Name || (unlinkedOnly && s.osmID != nil) {
		return nil, nil
	}
	return []reconcile.Instance{{
		ID:       1,
		Type:     entranceType.Name,
		NoteID:   10,
		Position: spatial.Point{Lat: 60.1613, Lon: 24.9446},
		Tags:     osmtags.Tags{"entrance": "main"},
	}}, nil
}

func (s *oneStore) LinkOSM(ctx context.Context, inst reconcile.Instance, osmID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.osmID != nil {
		return false, nil
	}
	s.osmID = &osmID
	return true, nil
}

func (s *oneStore) LinkAddress(ctx context.Context, inst reconcile.Instance, addressID int64) (bool, error) {
	return false, nil
}

func newTestEngine(store *oneStore) *reconcile.Engine {
	fetcher := staticFetcher{{ID: 4242, Lat: 60.16131, Lon: 24.94462, Tags: osmtags.Tags{"entrance": "main"}}}
	return reconcile.NewEngine(reconcile.DefaultConfig(), []reconcile.FeatureType{entranceType}, reconcile.Deps{
		Fetcher: fetcher,
		Store:   store,
	}, zap.NewNop())
}
