/*
Package monitoring provides Prometheus metrics for the relay.

# Features

- HTTP request metrics (latency, throughput, size)
- AI provider call metrics (duration, errors) per operation
- Tool-call counts split by whether they changed state
- SystemState collection sizes
- State stream connection metrics
- Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "chat")
	// ... call the provider ...
	timer.Stop("success")

# Metrics Endpoint

Each Metrics owns its registry, exposed through Handler:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
