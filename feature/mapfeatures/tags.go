package mapfeatures

import (
	"fmt"

	"osm-linker/core/osmtags"
)

// addressTags projects the street address columns.
func addressTags(a StreetAddress) osmtags.Tags {
	tags := osmtags.Tags{}
	tags.Set("addr:street", a.Street)
	tags.Set("addr:housenumber", deref(a.HouseNumber))
	tags.Set("addr:unit", a.Unit)
	return tags
}

// lockableTags projects the access columns.
func lockableTags(l Lockable) osmtags.Tags {
	tags := osmtags.Tags{}
	tags.Set("access", l.Access)
	tags.SetDecimal("width", l.Width)
	tags.SetDecimal("height", l.Height)
	tags.Set("phone", l.Phone)
	tags.Set("opening_hours", l.OpeningHours)
	switch {
	case l.Buzzer != nil && *l.Buzzer:
		tags.Set("description", "With buzzer")
	case l.Keycode != nil && *l.Keycode:
		tags.Set("description", "With keycode")
	}
	return tags
}

// entranceTypes maps entrance types without an OSM value of their own.
var entranceTypes = map[string]string{
	"workplace": "yes",
	"other":     "yes",
}

// OSMTags projects an entrance to OSM tags.
func (e Entrance) OSMTags() osmtags.Tags {
	own := osmtags.Tags{"entrance": "yes"}
	if t, ok := entranceTypes[e.Type]; ok {
		own.Set("entrance", t)
	} else {
		own.Set("entrance", e.Type)
	}
	own.Set("description", e.Description)
	if e.Loadingdock {
		own.Set("door", "loadingdock")
	}
	own.SetBool("wheelchair", e.Wheelchair)

	return osmtags.Merge(addressTags(e.StreetAddress), lockableTags(e.Lockable), own)
}

// OSMTags projects steps to OSM tags.
func (s Steps) OSMTags() osmtags.Tags {
	tags := osmtags.Tags{"highway": "steps"}
	tags.SetInt("step_count", s.StepCount)
	tags.SetBool("handrail", s.Handrail)
	tags.SetBool("ramp", s.Ramp)
	tags.SetDecimal("width", s.Width)
	tags.Set("incline", s.Incline)
	return tags
}

// OSMTags projects a gate to OSM tags.
func (g Gate) OSMTags() osmtags.Tags {
	barrier := "gate"
	if g.LiftGate {
		barrier = "lift_gate"
	}
	return osmtags.Merge(lockableTags(g.Lockable), osmtags.Tags{"barrier": barrier})
}

// OSMTags projects a barrier to OSM tags.
func (b Barrier) OSMTags() osmtags.Tags {
	return osmtags.Tags{"barrier": orDefault(b.Type, "yes")}
}

// OSMTags projects a workplace to OSM tags. The workplace type's own tags
// are applied last.
func (w Workplace) OSMTags() osmtags.Tags {
	own := osmtags.Tags{}
	own.Set("name", w.Name)
	own.Set("phone", w.Phone)
	own.Set("opening_hours", w.OpeningHours)
	own.Set("level", w.Level)
	own.Set("opening_hours:covid19", w.OpeningHoursCovid19)

	typeTags := osmtags.Tags{}
	for k, v := range w.Type.OSMTags {
		if v == nil {
			continue
		}
		typeTags[k] = fmt.Sprint(v)
	}

	return osmtags.Merge(addressTags(w.StreetAddress), own, typeTags)
}

// OSMTags projects an info board to OSM tags.
func (i InfoBoard) OSMTags() osmtags.Tags {
	return osmtags.Tags{
		"tourism":     "information",
		"information": orDefault(i.Type, "board"),
	}
}

// trafficSignCodes maps sign types to Finnish traffic sign codes.
var trafficSignCodes = map[string]string{
	"Max height":   "FI:342",
	"Max weight":   "FI:344",
	"No stopping":  "FI:371",
	"No parking":   "FI:372",
	"Loading zone": "FI:C43",
	"Parking":      "FI:521",
}

// textSignCode is the additional panel carrying free text.
const textSignCode = "FI:871"

// OSMTags projects a traffic sign to OSM tags. Limit signs carry their text
// inline; others put it on an additional panel. Unknown types yield no tags.
func (s TrafficSign) OSMTags() osmtags.Tags {
	code, ok := trafficSignCodes[s.Type]
	if !ok {
		return osmtags.Tags{}
	}
	if s.Type == "Max height" || s.Type == "Max weight" {
		return osmtags.Tags{"traffic_sign": fmt.Sprintf("%s[%s]", code, s.Text)}
	}

	tags := osmtags.Tags{"traffic_sign": code}
	if s.Text != "" {
		tags.Set("traffic_sign:2", fmt.Sprintf("%s[%s]", textSignCode, s.Text))
	}
	return tags
}

// OSMTags projects an unloading place to OSM tags.
func (u UnloadingPlace) OSMTags() osmtags.Tags {
	tags := osmtags.Tags{"parking:condition": "loading"}
	tags.SetDecimal("length", u.Length)
	tags.SetDecimal("width", u.Width)
	tags.SetDecimal("max_weight", u.MaxWeight)
	tags.Set("opening_hours", u.OpeningHours)
	return tags
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
