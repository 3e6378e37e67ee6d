package config

import "errors"

// Sentinel errors for configuration failure modes, matched with
// errors.Is.
var (
	// ErrInvalidConfig indicates a flag or profile value that is
	// syntactically or semantically invalid (unknown provider, bad
	// YAML, out-of-range port).
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMissingRequired indicates a required option was not provided,
	// such as the endpoint explanation.
	ErrMissingRequired = errors.New("config: missing required field")
)
