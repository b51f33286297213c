// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the linking endpoints.
//   - requestid: assigns every request an id, stored in the request locals
//     and echoed in the X-Request-ID response header for tracing.
package middleware
