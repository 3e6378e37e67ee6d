package apitest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiprobe/apiprobe/pkg/analysis"
	"github.com/apiprobe/apiprobe/pkg/executor"
	"github.com/apiprobe/apiprobe/pkg/llm"
	"github.com/apiprobe/apiprobe/pkg/scenario"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

const registerCurl = `curl -X POST 'https://api.example.com/register' -H 'Content-Type: application/json' -H 'Authorization: Bearer tok' --data-raw '{"email":"a@b.com","password":"x","name":"Acme"}'`

// stubClient returns a canned completion or error.
type stubClient struct {
	completion string
	err        error
	prompts    []string
}

func (s *stubClient) Provider() llm.Provider { return "stub" }

func (s *stubClient) Validate(ctx context.Context) error { return nil }

func (s *stubClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.completion, s.err
}

func TestGenerateScenariosValidation(t *testing.T) {
	_, err := GenerateScenarios(context.Background(), GenerationRequest{Explanation: "x"}, Options{})
	assert.ErrorIs(t, err, ErrMissingRequest)

	_, err = GenerateScenarios(context.Background(), GenerationRequest{RequestString: registerCurl}, Options{})
	assert.ErrorIs(t, err, ErrMissingExplanation)

	_, err = GenerateScenarios(context.Background(), GenerationRequest{RequestString: "   ", Explanation: "x"}, Options{})
	assert.ErrorIs(t, err, ErrMissingRequest)
}

func TestGenerateScenariosUsesLLMWhenWellFormed(t *testing.T) {
	client := &stubClient{completion: `{"scenarios":[{"name":"nominal","method":"POST","url":"https://api.example.com/register","expectedStatus":201}]}`}

	got, err := GenerateScenarios(context.Background(), GenerationRequest{
		RequestString: registerCurl,
		Explanation:   "user registration",
	}, Options{Client: client})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "nominal", got[0].Name)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "user registration")
}

func TestGenerateScenariosFallsBackOnCallFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}

	got, err := GenerateScenarios(context.Background(), GenerationRequest{
		RequestString: registerCurl,
		Explanation:   "user registration",
	}, Options{Client: client, Nonce: 42})

	require.NoError(t, err)
	assert.Equal(t, "nominal", got[0].Name)
	assert.Greater(t, len(got), 5, "full fallback battery")
	// One call, no retry.
	assert.Len(t, client.prompts, 1)
}

func TestGenerateScenariosFallsBackOnGarbageCompletion(t *testing.T) {
	client := &stubClient{completion: "I'm sorry, I can't produce JSON today."}

	got, err := GenerateScenarios(context.Background(), GenerationRequest{
		RequestString: registerCurl,
		Explanation:   "user registration",
	}, Options{Client: client, Nonce: 42})

	require.NoError(t, err)
	assert.Equal(t, "nominal", got[0].Name)
	for _, s := range got {
		assert.NotContains(t, s.Name, "sorry", "raw LLM text never surfaces")
	}
}

func TestGenerateScenariosNilClientDeterministic(t *testing.T) {
	req := GenerationRequest{RequestString: registerCurl, Explanation: "user registration"}

	a, err := GenerateScenarios(context.Background(), req, Options{Nonce: 42})
	require.NoError(t, err)
	b, err := GenerateScenarios(context.Background(), req, Options{Nonce: 42})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateScenariosRegisterBattery(t *testing.T) {
	got, err := GenerateScenarios(context.Background(), GenerationRequest{
		RequestString:    registerCurl,
		Explanation:      "user registration endpoint",
		StaticAttributes: []synthdata.StaticAttribute{{Name: "name", Value: "Pinned Corp"}},
	}, Options{Nonce: 42})
	require.NoError(t, err)

	names := map[string]scenario.TestScenario{}
	for _, s := range got {
		names[s.Name] = s
	}

	require.Contains(t, names, "nominal")
	assert.Equal(t, 201, names["nominal"].ExpectedStatus)
	assert.Contains(t, names["nominal"].Body, "Pinned Corp")

	assert.NotContains(t, names, "invalid_name", "pinned field is never corrupted")
	assert.Contains(t, names, "invalid_email")
	assert.Contains(t, names, "auth_missing")
	assert.Contains(t, names, "conflict")
}

func TestAnalyzeFallsBackDeterministically(t *testing.T) {
	report := &executor.Report{
		Summary: executor.Summary{Total: 2, Passed: 2, AvgResponseTimeMs: 50},
		Results: []executor.TestResult{
			{Success: true, Status: 200}, {Success: true, Status: 201},
		},
	}

	// Garbage completion: deterministic summary wins.
	a := Analyze(context.Background(), report, Options{Client: &stubClient{completion: "no json here"}})
	assert.Equal(t, analysis.RatingExcellent, a.PerformanceRating)
	assert.Equal(t, 10, a.ReliabilityScore)

	// No client at all: same result.
	b := Analyze(context.Background(), report, Options{})
	assert.Equal(t, a, b)
}

func TestAnalyzeUsesLLMWhenWellFormed(t *testing.T) {
	report := &executor.Report{Summary: executor.Summary{Total: 1, Passed: 1}}
	client := &stubClient{completion: `{"summary":"looks great","performanceRating":"excellent","reliabilityScore":9}`}

	a := Analyze(context.Background(), report, Options{Client: client})
	assert.Equal(t, "looks great", a.Summary)
	assert.Equal(t, 9, a.ReliabilityScore)
}
