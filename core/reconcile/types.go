package reconcile

import (
	"time"

	"osm-linker/core/osmtags"
	"osm-linker/core/spatial"
)

// Kind selects which linking passes a run performs.
type Kind string

const (
	// KindOSM links map features to OpenStreetMap nodes.
	KindOSM Kind = "osm"
	// KindAddresses links image notes to official registry addresses.
	KindAddresses Kind = "addresses"
	// KindAll runs the OSM pass followed by the address pass.
	KindAll Kind = "all"
)

// ParseKind validates a run kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindOSM, KindAddresses, KindAll:
		return k, nil
	case "":
		return KindAll, nil
	default:
		return "", ErrUnknownKind
	}
}

// FeatureType is the linking configuration of one map feature type.
type FeatureType struct {
	// Name is the registry key, e.g. "entrance".
	Name string `json:"name"`

	// OSMNodeQuery is the Overpass tag filter used to fetch candidates.
	// Empty disables OSM linking for the type.
	OSMNodeQuery string `json:"osm_node_query,omitempty"`

	// RequiredTags are the keys that must agree between the local and OSM tags.
	RequiredTags []string `json:"required_tags,omitempty"`

	// MaxDistance is the link threshold in meters.
	MaxDistance float64 `json:"max_distance_m"`

	// SupportsAddress marks types carrying street and housenumber fields.
	SupportsAddress bool `json:"supports_address"`
}

// AutoLinkable reports whether the type opts in to OSM linking.
func (t FeatureType) AutoLinkable() bool {
	return t.OSMNodeQuery != "" && len(t.RequiredTags) > 0
}

// Instance is one local map feature as seen by the engine.
type Instance struct {
	// ID is the feature row id.
	ID int64 `json:"id"`

	// Type is the feature type name.
	Type string `json:"type"`

	// NoteID is the owning image note.
	NoteID int64 `json:"note_id"`

	// Position is the owning note's location.
	Position spatial.Point `json:"position"`

	// Tags is the feature's OSM tag projection.
	Tags osmtags.Tags `json:"tags,omitempty"`

	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"housenumber,omitempty"`
}

// StreetAddress returns the registry lookup key for the instance.
func (i Instance) StreetAddress() string {
	return i.Street + " " + i.HouseNumber
}

// Address is one row of the official address registry.
type Address struct {
	ID          int64   `json:"id"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"housenumber"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Key returns the "{street} {housenumber}" lookup key.
func (a Address) Key() string {
	return a.Street + " " + a.HouseNumber
}

// Position returns the address location.
func (a Address) Position() spatial.Point {
	return spatial.Point{Lat: a.Lat, Lon: a.Lon}
}

// Options controls a reconciliation run.
type Options struct {
	// DryRun computes matches without writing links.
	DryRun bool

	// Types restricts the run to the named feature types. Empty means all.
	Types []string
}

func (o Options) includes(name string) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, t := range o.Types {
		if t == name {
			return true
		}
	}
	return false
}

// TypeResult summarizes one feature type within a run.
type TypeResult struct {
	// Type is the feature type name.
	Type string `json:"type"`

	// Kind is the pass that produced this result.
	Kind Kind `json:"kind"`

	// Candidates is the number of external features considered.
	Candidates int `json:"candidates"`

	// Checked is the number of eligible local instances.
	Checked int `json:"checked"`

	// Matched is the number of instances with a qualifying candidate.
	Matched int `json:"matched"`

	// Linked is the number of links newly written.
	Linked int `json:"linked"`

	// Skipped counts matches dropped because the instance was linked meanwhile.
	Skipped int `json:"skipped"`

	// Error is set when the type was aborted, e.g. by a failed fetch.
	Error string `json:"error,omitempty"`

	// Links lists the planned links.
	Links []PlannedLink `json:"links,omitempty"`

	// DurationMS is the wall time spent on the type.
	DurationMS int64 `json:"duration_ms"`
}

// RunReport is the outcome of one reconciliation run.
type RunReport struct {
	ID         string       `json:"id"`
	Kind       Kind         `json:"kind"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Types      []TypeResult `json:"types"`

	// Linked is the total of new links across all types.
	Linked int `json:"linked"`

	// Failed is the number of types aborted by an error.
	Failed int `json:"failed"`
}

func (r *RunReport) add(res TypeResult) {
	r.Types = append(r.Types, res)
	r.Linked += res.Linked
	if res.Error != "" {
		r.Failed++
	}
}
