// Package osmtags holds the OpenStreetMap tag vocabulary shared by local map
// features and fetched OSM nodes, and decides when two tag sets describe the
// same real-world object.
package osmtags

import (
	"sort"
	"strconv"
	"strings"
)

// Tags is an OSM tag mapping. Absent values are never stored; a projection
// that has nothing to say about a key leaves it out.
type Tags map[string]string

// Matches reports whether external and local tags agree on every required key
// that both sides carry. Keys missing from either side are skipped, so absent
// information never blocks a match. Values compare case-insensitively.
//
// An empty required list always matches; callers filter out feature types
// without auto-linking before reaching this point.
func Matches(external, local Tags, required []string) bool {
	for _, key := range required {
		ev, eok := external[key]
		lv, lok := local[key]
		if !eok || !lok {
			continue
		}
		if !strings.EqualFold(ev, lv) {
			return false
		}
	}
	return true
}

// Merge returns a new mapping with the entries of all sets; later sets win.
func Merge(sets ...Tags) Tags {
	out := Tags{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// Set stores value under key unless the value is empty.
func (t Tags) Set(key, value string) {
	if value == "" {
		return
	}
	t[key] = value
}

// decimalPlaces matches the scale of the numeric(4,2) measure columns.
const decimalPlaces = 2

// SetDecimal stores a measure with two decimal places ("1.50"), dropping nil values.
func (t Tags) SetDecimal(key string, value *float64) {
	if value == nil {
		return
	}
	t[key] = strconv.FormatFloat(*value, 'f', decimalPlaces, 64)
}

// SetInt stores an integer count, dropping nil values.
func (t Tags) SetInt(key string, value *int) {
	if value == nil {
		return
	}
	t[key] = strconv.Itoa(*value)
}

// SetBool stores yes/no for a tri-state flag, dropping nil values.
func (t Tags) SetBool(key string, value *bool) {
	t.Set(key, YesNo(value))
}

// YesNo converts a tri-state flag to OSM's yes/no vocabulary.
func YesNo(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "yes"
	}
	return "no"
}

// Keys returns the tag keys in sorted order.
func (t Tags) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
