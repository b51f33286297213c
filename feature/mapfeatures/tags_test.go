package mapfeatures

import (
	"testing"

	"osm-linker/core/osmtags"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestEntrance_OSMTags(t *testing.T) {
	tests := []struct {
		name     string
		entrance Entrance
		want     osmtags.Tags
	}{
		{
			name: "staircase with address",
			entrance: Entrance{
				StreetAddress: StreetAddress{Street: "Unioninkatu", HouseNumber: ptr("24")},
				Type:          "staircase",
			},
			want: osmtags.Tags{"addr:street": "Unioninkatu", "addr:housenumber": "24", "entrance": "staircase"},
		},
		{
			name:     "workplace type maps to yes",
			entrance: Entrance{Type: "workplace"},
			want:     osmtags.Tags{"entrance": "yes"},
		},
		{
			name:     "missing type defaults to yes",
			entrance: Entrance{},
			want:     osmtags.Tags{"entrance": "yes"},
		},
		{
			name: "lockable and own columns",
			entrance: Entrance{
				StreetAddress: StreetAddress{Street: "Mannerheimintie", Unit: "B"},
				Lockable:      Lockable{Access: "delivery", Width: ptr(1.2), Buzzer: ptr(true), Keycode: ptr(true)},
				Type:          "service",
				Loadingdock:   true,
				Wheelchair:    ptr(false),
			},
			want: osmtags.Tags{
				"addr:street": "Mannerheimintie",
				"addr:unit":   "B",
				"access":      "delivery",
				"width":       "1.20",
				"description": "With buzzer",
				"entrance":    "service",
				"door":        "loadingdock",
				"wheelchair":  "no",
			},
		},
		{
			name: "own description wins over keycode",
			entrance: Entrance{
				Lockable:    Lockable{Keycode: ptr(true)},
				Type:        "main",
				Description: "Door on the left",
			},
			want: osmtags.Tags{"entrance": "main", "description": "Door on the left"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entrance.OSMTags())
		})
	}
}

func TestGate_OSMTags(t *testing.T) {
	assert.Equal(t, osmtags.Tags{"barrier": "gate"}, Gate{}.OSMTags())
	assert.Equal(t,
		osmtags.Tags{"barrier": "lift_gate", "description": "With keycode", "opening_hours": "Mo-Fr 08:00-16:00"},
		Gate{LiftGate: true, Lockable: Lockable{Keycode: ptr(true), OpeningHours: "Mo-Fr 08:00-16:00"}}.OSMTags(),
	)
}

func TestSimpleFeatures_OSMTags(t *testing.T) {
	assert.Equal(t, osmtags.Tags{"barrier": "yes"}, Barrier{}.OSMTags())
	assert.Equal(t, osmtags.Tags{"barrier": "bollard"}, Barrier{Type: "bollard"}.OSMTags())

	assert.Equal(t, osmtags.Tags{"tourism": "information", "information": "board"}, InfoBoard{}.OSMTags())
	assert.Equal(t, osmtags.Tags{"tourism": "information", "information": "map"}, InfoBoard{Type: "map"}.OSMTags())

	assert.Equal(t,
		osmtags.Tags{"highway": "steps", "step_count": "4", "handrail": "yes", "ramp": "no", "incline": "up"},
		Steps{StepCount: ptr(4), Handrail: ptr(true), Ramp: ptr(false), Incline: "up"}.OSMTags(),
	)

	assert.Equal(t,
		osmtags.Tags{"parking:condition": "loading", "length": "12.00", "max_weight": "3.50"},
		UnloadingPlace{Length: ptr(12.0), MaxWeight: ptr(3.5), Description: "Behind the shop"}.OSMTags(),
	)
}

func TestTrafficSign_OSMTags(t *testing.T) {
	tests := []struct {
		sign TrafficSign
		want osmtags.Tags
	}{
		{TrafficSign{Type: "Max height", Text: "3.2"}, osmtags.Tags{"traffic_sign": "FI:342[3.2]"}},
		{TrafficSign{Type: "Max weight", Text: "8"}, osmtags.Tags{"traffic_sign": "FI:344[8]"}},
		{TrafficSign{Type: "No parking"}, osmtags.Tags{"traffic_sign": "FI:372"}},
		{TrafficSign{Type: "Loading zone", Text: "Ma-Pe 7-16"}, osmtags.Tags{"traffic_sign": "FI:C43", "traffic_sign:2": "FI:871[Ma-Pe 7-16]"}},
		{TrafficSign{Type: "Speed bump"}, osmtags.Tags{}},
	}

	for _, tt := range tests {
		t.Run(tt.sign.Type, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sign.OSMTags())
		})
	}
}

func TestWorkplace_OSMTags(t *testing.T) {
	w := Workplace{
		StreetAddress:       StreetAddress{Street: "Fabianinkatu", HouseNumber: ptr("4")},
		Name:                "Kahvila Fabian",
		Level:               "1",
		OpeningHoursCovid19: "off",
		Type: WorkplaceType{OSMTags: map[string]any{
			"amenity": "cafe",
			"level":   "0",
			"seats":   float64(20),
			"drop":    nil,
		}},
	}

	assert.Equal(t, osmtags.Tags{
		"addr:street":           "Fabianinkatu",
		"addr:housenumber":      "4",
		"name":                  "Kahvila Fabian",
		"level":                 "0",
		"opening_hours:covid19": "off",
		"amenity":               "cafe",
		"seats":                 "20",
	}, w.OSMTags())
}
