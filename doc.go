// Package mintfeed is a ledger-backed social content service.

// Binaries live under cmd/ (server, cli, seed). The core is organized
// into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/content: content service and create pipeline
// - internal/scanner: collection scanning with timeout handling
// - internal/queue: rate-limited request queue for ledger reads
// - internal/cache: in-memory TTL cache with stale-read fallback
// - internal/classify: ledger record classification
// - internal/ledger: ledger RPC client, identities, and mocks
// - internal/storage: image storage (S3) operations
// - internal/middleware: HTTP middleware (rate limiting, etc.)
// - internal/metrics: Prometheus metrics
// - internal/config: environment configuration

// See the individual package documentation for detailed API reference.
package mintfeed
