// Package metric provides Prometheus metrics registration and HTTP
// exposition for heapless components.
//
// The MetricsRegistry wraps a private Prometheus registry so that
// component metrics are namespaced per registry instance and cannot
// collide with the process-global default registry. Duplicate
// registrations are rejected with classified errors rather than
// panicking.
//
// Typical usage:
//
//	registry := metric.NewMetricsRegistry()
//
//	buf, err := histbuf.New[float64](64,
//	    histbuf.WithMetrics[float64](registry, "telemetry_window"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server := metric.NewServer(9090, "/metrics", registry)
//	go server.Start()
//	defer server.Stop()
//
// The server exposes the registry in OpenMetrics format plus a
// trivial /health endpoint.
package metric
