// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all runtime configuration defaults.
//
// Usage:
//
//	config.Concurrency = defaults.ConcurrencyMedium
//	req.Header.Set("Content-Type", defaults.ContentTypeJSON)
//
// DO NOT use hardcoded values like `Concurrency: 10` anywhere.
// Instead, reference the appropriate constant from this package.
package defaults

import "fmt"

// Version is the current apiprobe version
const Version = "1.2.0"

// ============================================================================
// CONCURRENCY SETTINGS
// ============================================================================

const (
	// ConcurrencyMinimal is for sequential execution (1)
	ConcurrencyMinimal = 1

	// ConcurrencyLow is for gentle probing of fragile targets (5)
	ConcurrencyLow = 5

	// ConcurrencyMedium is the standard batch fan-out (10)
	ConcurrencyMedium = 10

	// ConcurrencyHigh is for large scenario batteries (20)
	ConcurrencyHigh = 20
)

// ============================================================================
// HTTP DEFAULTS
// ============================================================================

const (
	// ContentTypeJSON is the JSON media type
	ContentTypeJSON = "application/json"

	// ContentTypeForm is the URL-encoded form media type
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeText is the plain text media type
	ContentTypeText = "text/plain"

	// AcceptAny accepts any response media type
	AcceptAny = "*/*"

	// UAMinimal is the minimal apiprobe user agent
	UAMinimal = "apiprobe/" + Version
)

// UserAgent returns the apiprobe user agent with context
func UserAgent(context string) string {
	if context == "" {
		return UAMinimal
	}
	return fmt.Sprintf("apiprobe/%s (%s)", Version, context)
}

// ExpectedStatus returns the method-derived default expected status code,
// used when a scenario carries no explicit expectation.
func ExpectedStatus(method string) int {
	switch method {
	case "POST":
		return 201
	case "PUT", "PATCH":
		return 200
	case "DELETE":
		return 204
	default:
		return 200
	}
}

// ============================================================================
// SCENARIO BATTERY SETTINGS
// ============================================================================

const (
	// MaxInvalidFieldTests caps per-field invalid scenarios in the
	// fallback battery (4)
	MaxInvalidFieldTests = 4

	// NotFoundSentinel replaces the first numeric path segment in the
	// not-found probe
	NotFoundSentinel = "999999999"

	// OversizedStringLength is the length of oversized invalid values
	OversizedStringLength = 1000
)

// ============================================================================
// SIZE LIMITS
// ============================================================================

const (
	// MaxScenarioCount bounds a single batch (200)
	MaxScenarioCount = 200

	// CompletionBudget is the default output-size budget requested from
	// LLM providers, in tokens (4096)
	CompletionBudget = 4096
)
