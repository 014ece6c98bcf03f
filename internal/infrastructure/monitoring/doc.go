// Package monitoring provides Prometheus metrics for the panel host.
//
// Metrics cover the HTTP surface (request counts and latency), panel
// lifecycle (open, reveal, close), message routing (per-command inbound and
// outbound counts, unknown-command drops), notifications and surface
// channel connections.
//
// Metrics implements the observer interfaces of the panel manager and the
// message router so lifecycle and routing events flow in without those
// packages importing Prometheus.
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
package monitoring
