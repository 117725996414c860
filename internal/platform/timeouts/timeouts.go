// Package timeouts defines shared timeout constants used across commands.
// Centralizing these values prevents drift between the server and the
// importer and makes the durations discoverable.
package timeouts

import "time"

// Fetch caps the time allowed for a single Geodin API request.
const Fetch = 30 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
