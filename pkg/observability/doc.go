/*
Package observability turns the scene core's hooks into logs and Prometheus
metrics.

Metrics.Hooks returns a domain.Hooks value to pass to scene.WithHooks; every
propagation, layout pass and resource teardown is counted and, when a logger
is set, logged at debug level. Metrics.Handler serves the registry over HTTP.
*/
package observability
