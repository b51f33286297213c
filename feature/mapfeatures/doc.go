// Package mapfeatures is the registry and persistence side of linking.
//
// Every map feature type is described by a Definition: its linking
// configuration (node query, required tags, distance threshold, address
// support), its table, and a loader for its rows. Each model projects itself
// to OSM tags with an OSMTags method built from small per-concern helpers
// (address columns, lockable columns) and its own fields.
//
// Store reads processed instances and writes links with get-or-create and
// insert-ignore semantics, so concurrent or repeated runs only ever fill
// empty links.
package mapfeatures
