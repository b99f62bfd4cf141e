// Package observe turns journey events into logs, OpenTelemetry metrics
// and spans. Observers run on the goroutine that drives the session.
package observe
