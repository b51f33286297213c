// Package server holds the HTTP server configuration.
//
// The server is an optional companion to the batch CLI: it exposes the
// feature registry and the most recent link run report, and can trigger a
// run. The Config struct defines the HTTP port and the
// API key that protects every route.
package server
