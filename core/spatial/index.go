// Package spatial provides the point index used to find OSM nodes near a
// local map feature.
//
// The index treats (lon, lat) degrees as a flat plane, which is accurate
// enough to rank candidates within a single city. Thresholds are expressed
// in meters and are always checked with Distance, the great-circle distance.
package spatial

import (
	"sort"

	"osm-linker/core/osmtags"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

// Point is a WGS84 position.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	return geo.DistanceHaversine(a.orb(), b.orb())
}

// Candidate is an external feature that a local feature may be linked to.
type Candidate struct {
	ID   int64        `json:"id"`
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
	Tags osmtags.Tags `json:"tags,omitempty"`
}

// Position returns the candidate's location.
func (c Candidate) Position() Point {
	return Point{Lat: c.Lat, Lon: c.Lon}
}

// entry adapts a Candidate to orb.Pointer.
type entry struct {
	candidate Candidate
	point     orb.Point
}

func (e *entry) Point() orb.Point {
	return e.point
}

// Index is a read-only nearest-neighbour index over a fixed candidate set.
// It is safe for concurrent reads once built.
type Index struct {
	tree *quadtree.Quadtree
	size int
}

// boundPadding keeps single-point and collinear sets inside a non-degenerate bound.
const boundPadding = 1e-6

// New builds an index over the candidates. An empty slice yields an index
// that never matches.
func New(candidates []Candidate) *Index {
	if len(candidates) == 0 {
		return &Index{}
	}

	bound := candidates[0].Position().orb().Bound()
	for _, c := range candidates[1:] {
		bound = bound.Extend(c.Position().orb())
	}

	tree := quadtree.New(bound.Pad(boundPadding))
	for _, c := range candidates {
		// Add only fails for points outside the bound, which was built from these same points.
		_ = tree.Add(&entry{candidate: c, point: c.Position().orb()})
	}

	return &Index{tree: tree, size: len(candidates)}
}

// Len returns the number of indexed candidates.
func (idx *Index) Len() int {
	return idx.size
}

// Nearest returns the candidate closest to p in the index plane.
// Equidistant candidates resolve to the smallest id.
func (idx *Index) Nearest(p Point) (Candidate, bool) {
	if idx.tree == nil {
		return Candidate{}, false
	}

	q := p.orb()
	found := idx.tree.Find(q)
	if found == nil {
		return Candidate{}, false
	}

	best := found.(*entry)
	bestDist := planar.DistanceSquared(q, best.point)

	// The quadtree returns whichever equidistant point it visits first.
	radius := planar.Distance(q, best.point)
	for _, ptr := range idx.tree.InBound(nil, q.Bound().Pad(radius)) {
		e := ptr.(*entry)
		if planar.DistanceSquared(q, e.point) == bestDist && e.candidate.ID < best.candidate.ID {
			best = e
		}
	}

	return best.candidate, true
}

// Within returns every candidate whose index-plane distance to p is at most
// radius degrees, ordered by great-circle distance and then id.
func (idx *Index) Within(p Point, radius float64) []Candidate {
	if idx.tree == nil || radius < 0 {
		return nil
	}

	q := p.orb()
	var found []Candidate
	for _, ptr := range idx.tree.InBound(nil, q.Bound().Pad(radius)) {
		e := ptr.(*entry)
		if planar.Distance(q, e.point) <= radius {
			found = append(found, e.candidate)
		}
	}

	SortByDistance(p, found)
	return found
}

// SortByDistance orders candidates by great-circle distance from p, breaking
// ties by ascending id.
func SortByDistance(p Point, candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di := Distance(p, candidates[i].Position())
		dj := Distance(p, candidates[j].Position())
		if di != dj {
			return di < dj
		}
		return candidates[i].ID < candidates[j].ID
	})
}
