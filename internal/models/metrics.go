package models

import "time"

// SystemMetrics is the aggregated runtime snapshot served to operators.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	GatewayCallsTotal        uint64    `json:"gateway_calls_total"`
	GatewayFailuresTotal     uint64    `json:"gateway_failures_total"`
	AverageGatewayDurationMs float64   `json:"average_gateway_duration_ms"`
	TransitionsTotal         uint64    `json:"transitions_total"`
	TransitionFailuresTotal  uint64    `json:"transition_failures_total"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
