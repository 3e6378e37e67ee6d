// Package scenario defines the test-scenario model and the deterministic
// fallback battery built when LLM generation is unavailable or returns
// garbage. The battery is fixed-shape: nominal, per-field invalid,
// missing-field, auth, injection, rate-limit, not-found and conflict
// probes, each with an expected status.
package scenario

import (
	"fmt"
	"strings"
)

// TestScenario is one synthesized HTTP test case with an expected
// outcome. Immutable once produced.
type TestScenario struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Headers        map[string]string `json:"headers,omitempty"`
	Body           string            `json:"body,omitempty"`
	ExpectedStatus int               `json:"expectedStatus,omitempty"`
}

// Validate reports whether the scenario is executable.
func (s *TestScenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario: missing name")
	}
	if s.URL == "" {
		return fmt.Errorf("scenario %q: missing url", s.Name)
	}
	if s.Method == "" {
		return fmt.Errorf("scenario %q: missing method", s.Name)
	}
	return nil
}

// cloneHeaders copies h so scenarios never share header maps.
func cloneHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// deleteHeader removes name from h case-insensitively.
func deleteHeader(h map[string]string, name string) {
	for k := range h {
		if strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
}

// setHeader overwrites name in h, replacing any existing spelling.
func setHeader(h map[string]string, name, value string) {
	deleteHeader(h, name)
	h[name] = value
}
