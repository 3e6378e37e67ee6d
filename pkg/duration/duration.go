// Package duration provides canonical time constants for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all time-based configuration.
//
// Usage:
//
//	ctx, cancel := context.WithTimeout(ctx, duration.ContextShort)
//	Timeout: duration.HTTPTesting,
//
// DO NOT use hardcoded time.Duration values like `30 * time.Second` anywhere.
// Instead, reference the appropriate constant from this package.
package duration

import "time"

// ============================================================================
// HTTP CLIENT TIMEOUTS
// ============================================================================

const (
	// HTTPProbing is for quick health checks (5s)
	HTTPProbing = 5 * time.Second

	// HTTPTesting is the per-scenario request timeout (30s) - the default
	HTTPTesting = 30 * time.Second

	// HTTPLLMCall is for external LLM API round-trips (60s)
	HTTPLLMCall = 60 * time.Second
)

// ============================================================================
// CONTEXT/OPERATION TIMEOUTS
// ============================================================================

const (
	// ContextShort is for quick operations (30s)
	ContextShort = 30 * time.Second

	// ContextMedium is for a full scenario batch (5min)
	ContextMedium = 5 * time.Minute

	// ContextLong is for full generate-execute-analyze runs (15min)
	ContextLong = 15 * time.Minute
)

// ============================================================================
// NETWORK TUNING
// ============================================================================

const (
	// DialTimeout bounds TCP connection establishment (10s)
	DialTimeout = 10 * time.Second

	// TLSHandshake bounds the TLS handshake (10s)
	TLSHandshake = 10 * time.Second

	// KeepAlive is the TCP keep-alive interval (30s)
	KeepAlive = 30 * time.Second

	// IdleConn is how long idle pooled connections are kept (90s)
	IdleConn = 90 * time.Second

	// MetricsReadTimeout bounds metrics endpoint reads (5s)
	MetricsReadTimeout = 5 * time.Second

	// MetricsWriteTimeout bounds metrics endpoint writes (10s)
	MetricsWriteTimeout = 10 * time.Second
)

// ============================================================================
// RESPONSE TIME THRESHOLDS
// ============================================================================
//
// Used by the deterministic performance assessment.
// ============================================================================

const (
	// ResponseExcellent is the upper bound for an excellent rating (200ms)
	ResponseExcellent = 200 * time.Millisecond

	// ResponseGood is the upper bound for a good rating (500ms)
	ResponseGood = 500 * time.Millisecond

	// ResponseAverage is the upper bound for an average rating (1s)
	ResponseAverage = 1 * time.Second
)
