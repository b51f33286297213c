// Package linking exposes reconciliation runs to operators.
//
// The Service wraps a reconcile.Engine with the run lock, keeps the most
// recent report in memory and archives every finished report as JSON to
// object storage under reports/<run id>.json.
//
// # Routes
//
//   - GET  /linking/types        registered feature types
//   - GET  /linking/report       most recent run report
//   - GET  /linking/reports      archived report ids
//   - GET  /linking/reports/:id  one report, from memory or the archive
//   - POST /linking/run          start a run (kind, dry_run, type query params)
package linking
