package mapfeatures

import (
	"context"

	"osm-linker/core/osmtags"
	"osm-linker/core/reconcile"

	"gorm.io/gorm"
)

// mapFeature is implemented by every feature model.
type mapFeature interface {
	base() Base
	OSMTags() osmtags.Tags
}

// addressable is implemented by features with street address columns.
type addressable interface {
	streetAddress() StreetAddress
}

// loadFunc reads the processed rows of one feature table.
type loadFunc func(ctx context.Context, db *gorm.DB, unlinkedOnly bool) ([]mapFeature, error)

// Definition binds a feature type's linking configuration to its table.
type Definition struct {
	reconcile.FeatureType

	// Table is the feature's table name.
	Table string

	// Columns lists the type-specific columns read by the projection.
	Columns []string

	load loadFunc
}

var baseColumns = []string{"id", "image_note_id", "osm_feature_id"}
var addressColumns = []string{"street", "housenumber", "unit"}
var lockableColumns = []string{"access", "width", "height", "buzzer", "keycode", "phone", "opening_hours"}

var definitions = []Definition{
	{
		FeatureType: reconcile.FeatureType{
			Name:            "entrance",
			OSMNodeQuery:    "entrance",
			RequiredTags:    []string{"addr:unit", "addr:housenumber", "addr:street", "entrance"},
			MaxDistance:     5,
			SupportsAddress: true,
		},
		Table:   Entrance{}.TableName(),
		Columns: concat(addressColumns, lockableColumns, []string{"type", "description", "wheelchair", "loadingdock"}),
		load:    loader[Entrance](),
	},
	{
		FeatureType: reconcile.FeatureType{Name: "steps", MaxDistance: 5},
		Table:       Steps{}.TableName(),
		Columns:     []string{"step_count", "handrail", "ramp", "width", "incline"},
		load:        loader[Steps](),
	},
	{
		FeatureType: reconcile.FeatureType{
			Name:         "gate",
			OSMNodeQuery: `barrier~"^(gate|lift_gate)$"`,
			RequiredTags: []string{"barrier"},
			MaxDistance:  5,
		},
		Table:   Gate{}.TableName(),
		Columns: concat(lockableColumns, []string{"lift_gate"}),
		load:    loader[Gate](),
	},
	{
		FeatureType: reconcile.FeatureType{Name: "barrier", MaxDistance: 5},
		Table:       Barrier{}.TableName(),
		Columns:     []string{"type"},
		load:        loader[Barrier](),
	},
	{
		FeatureType: reconcile.FeatureType{
			Name:            "workplace",
			OSMNodeQuery:    "name",
			RequiredTags:    []string{"name"},
			MaxDistance:     20,
			SupportsAddress: true,
		},
		Table:   Workplace{}.TableName(),
		Columns: concat(addressColumns, []string{"type_id", "name", "phone", "opening_hours", "opening_hours_covid19", "level"}),
		load:    loader[Workplace]("Type"),
	},
	{
		FeatureType: reconcile.FeatureType{Name: "info_board", MaxDistance: 5},
		Table:       InfoBoard{}.TableName(),
		Columns:     []string{"type"},
		load:        loader[InfoBoard](),
	},
	{
		FeatureType: reconcile.FeatureType{Name: "traffic_sign", MaxDistance: 5},
		Table:       TrafficSign{}.TableName(),
		Columns:     []string{"type", "text"},
		load:        loader[TrafficSign](),
	},
	{
		FeatureType: reconcile.FeatureType{Name: "unloading_place", MaxDistance: 5},
		Table:       UnloadingPlace{}.TableName(),
		Columns:     []string{"length", "width", "max_weight", "description", "opening_hours"},
		load:        loader[UnloadingPlace](),
	},
}

// Types returns the linking configuration of every feature type, in run order.
func Types() []reconcile.FeatureType {
	types := make([]reconcile.FeatureType, 0, len(definitions))
	for _, d := range definitions {
		types = append(types, d.FeatureType)
	}
	return types
}

// Definitions returns every registered feature definition.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup returns the definition of a feature type.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// loader builds a loadFunc for model T, preloading the named associations.
func loader[T any, P interface {
	*T
	mapFeature
}](preload ...string) loadFunc {
	return func(ctx context.Context, db *gorm.DB, unlinkedOnly bool) ([]mapFeature, error) {
		processed := db.Model(&ImageNote{}).Select("id").Where("processed_by_id IS NOT NULL")

		q := db.WithContext(ctx).Where("image_note_id IN (?)", processed)
		if unlinkedOnly {
			q = q.Where("osm_feature_id IS NULL")
		}
		for _, assoc := range preload {
			q = q.Preload(assoc)
		}

		var rows []T
		if err := q.Order("id").Find(&rows).Error; err != nil {
			return nil, err
		}

		out := make([]mapFeature, 0, len(rows))
		for i := range rows {
			out = append(out, P(&rows[i]))
		}
		return out, nil
	}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
