package reconcile

import (
	"osm-linker/core/osmtags"
	"osm-linker/core/spatial"
)

// MatchResult is the candidate selected for an instance.
type MatchResult struct {
	Candidate spatial.Candidate
	// Distance is the great-circle distance in meters.
	Distance float64
	// Fallback is set when the candidate came from the radius search.
	Fallback bool
}

// Match picks the external candidate an instance should be linked to.
//
// The nearest candidate wins when it is closer than the type's threshold and
// its tags agree with the instance on the required keys. Otherwise every
// candidate within fallbackRadius degrees is tried in order of distance and
// then id, and the first one passing the same two checks is returned.
func Match(idx *spatial.Index, inst Instance, t FeatureType, fallbackRadius float64) (MatchResult, bool) {
	qualifies := func(c spatial.Candidate) (float64, bool) {
		d := spatial.Distance(inst.Position, c.Position())
		return d, d < t.MaxDistance && osmtags.Matches(c.Tags, inst.Tags, t.RequiredTags)
	}

	nearest, ok := idx.Nearest(inst.Position)
	if !ok {
		return MatchResult{}, false
	}
	if d, ok := qualifies(nearest); ok {
		return MatchResult{Candidate: nearest, Distance: d}, true
	}

	for _, c := range idx.Within(inst.Position, fallbackRadius) {
		if c.ID == nearest.ID {
			continue
		}
		if d, ok := qualifies(c); ok {
			return MatchResult{Candidate: c, Distance: d, Fallback: true}, true
		}
	}

	return MatchResult{}, false
}
