package llm

import (
	"errors"
	"fmt"

	"github.com/apiprobe/apiprobe/pkg/analysis"
	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
	"github.com/apiprobe/apiprobe/pkg/scenario"
)

// ErrNoScenarios is returned when a completion parses but carries no
// usable scenarios array.
var ErrNoScenarios = errors.New("llm: completion has no scenarios array")

// ParseScenarios coerces a raw completion into a scenario batch. The
// extraction is tolerant (fence stripping, brace matching, light
// repair); the resulting object must carry a non-empty "scenarios"
// array of well-formed entries or an error is returned so the caller
// can fall back.
func ParseScenarios(completion string) ([]scenario.TestScenario, error) {
	obj, err := jsonutil.ExtractObject(completion)
	if err != nil {
		return nil, fmt.Errorf("llm: extract completion: %w", err)
	}

	var envelope scenarioEnvelope
	if err := jsonutil.Unmarshal(obj, &envelope); err != nil {
		return nil, fmt.Errorf("llm: decode completion: %w", err)
	}
	if len(envelope.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	if len(envelope.Scenarios) > defaults.MaxScenarioCount {
		envelope.Scenarios = envelope.Scenarios[:defaults.MaxScenarioCount]
	}

	out := make([]scenario.TestScenario, 0, len(envelope.Scenarios))
	for i, raw := range envelope.Scenarios {
		body, err := raw.bodyString()
		if err != nil {
			return nil, fmt.Errorf("llm: scenario %d body: %w", i, err)
		}
		s := scenario.TestScenario{
			Name:           raw.Name,
			Description:    raw.Description,
			Method:         raw.Method,
			URL:            raw.URL,
			Headers:        raw.Headers,
			Body:           body,
			ExpectedStatus: raw.ExpectedStatus,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("llm: scenario %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseAnalysis coerces a raw completion into an Analysis. The summary
// field is mandatory; a completion without one is treated as malformed.
func ParseAnalysis(completion string) (*analysis.Analysis, error) {
	obj, err := jsonutil.ExtractObject(completion)
	if err != nil {
		return nil, fmt.Errorf("llm: extract completion: %w", err)
	}

	var a analysis.Analysis
	if err := jsonutil.Unmarshal(obj, &a); err != nil {
		return nil, fmt.Errorf("llm: decode completion: %w", err)
	}
	if a.Summary == "" {
		return nil, errors.New("llm: completion has no summary")
	}
	return &a, nil
}
