package llm

import (
	"fmt"
	"strings"

	"github.com/apiprobe/apiprobe/pkg/apicontext"
	"github.com/apiprobe/apiprobe/pkg/curlparse"
	"github.com/apiprobe/apiprobe/pkg/executor"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

// GenerationPrompt builds the scenario-generation prompt. It embeds the
// parsed request, the inferred domain context, the caller's explanation
// and any pinned attributes, and instructs the model to answer with a
// single JSON object holding a "scenarios" array.
func GenerationPrompt(req *curlparse.Request, apiCtx *apicontext.Context, explanation string, static []synthdata.StaticAttribute) string {
	var sb strings.Builder

	sb.WriteString("You are an API testing assistant. Generate test scenarios for the HTTP endpoint below.\n\n")

	sb.WriteString("Endpoint under test:\n")
	fmt.Fprintf(&sb, "  Method: %s\n", req.Method)
	fmt.Fprintf(&sb, "  URL: %s\n", req.URL)
	for k, v := range req.Headers {
		if strings.EqualFold(k, "Authorization") {
			v = "<redacted>"
		}
		fmt.Fprintf(&sb, "  Header: %s: %s\n", k, v)
	}
	if req.HasBody {
		fmt.Fprintf(&sb, "  Body: %s\n", req.Body)
	}

	fmt.Fprintf(&sb, "\nBusiness domain: %s (%s)\n", apiCtx.Domain, apiCtx.Description)
	fmt.Fprintf(&sb, "Caller's context: %s\n", explanation)

	if len(static) > 0 {
		sb.WriteString("\nPinned attributes (use these exact values in every payload, never vary or corrupt them):\n")
		for _, attr := range static {
			fmt.Fprintf(&sb, "  %s = %v\n", attr.Name, attr.Value)
		}
	}

	sb.WriteString(`
Rules:
- Cover the nominal case, per-field validation failures, a missing required field, missing and invalid authentication, an injection probe, rate limiting, a non-existent resource, and a duplicate submission.
- Each validation scenario must differ from a valid payload in exactly one field.
- Use realistic but clearly synthetic data; unique values (emails, names) must not collide between scenarios.
- Never invent payload fields that the original request does not have.
- expectedStatus is the status a correctly implemented API would return.

Respond with a single JSON object and nothing else, in this form:
{"scenarios":[{"name":"...","description":"...","method":"...","url":"...","headers":{},"body":"...","expectedStatus":200}]}
`)
	return sb.String()
}

// AnalysisPrompt builds the report-analysis prompt from the full result
// set and summary.
func AnalysisPrompt(report *executor.Report) string {
	var sb strings.Builder

	sb.WriteString("You are an API quality analyst. Analyze the following test run.\n\n")
	fmt.Fprintf(&sb, "Target: %s\n", report.Target)
	fmt.Fprintf(&sb, "Summary: %d total, %d passed, %d failed, avg response %dms\n\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed, report.Summary.AvgResponseTimeMs)

	sb.WriteString("Results:\n")
	for _, r := range report.Results {
		fmt.Fprintf(&sb, "  %s: expected %d, got %d, %dms", r.Scenario.Name, r.Scenario.ExpectedStatus, r.Status, r.ResponseTimeMs)
		if r.Error != "" {
			fmt.Fprintf(&sb, ", error: %s", r.Error)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(`
Respond with a single JSON object and nothing else, in this form:
{"summary":"...","performanceRating":"excellent|good|average|poor","securityIssues":["..."],"recommendations":["..."],"reliabilityScore":7}
`)
	return sb.String()
}

// scenarioEnvelope is the schema a generation completion must satisfy.
type scenarioEnvelope struct {
	Scenarios []rawScenario `json:"scenarios"`
}

type rawScenario struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Headers        map[string]string `json:"headers"`
	Body           any               `json:"body"`
	ExpectedStatus int               `json:"expectedStatus"`
}

// bodyString renders a completion's body field, which models emit
// either as a JSON string or as an inline object.
func (r rawScenario) bodyString() (string, error) {
	switch b := r.Body.(type) {
	case nil:
		return "", nil
	case string:
		return b, nil
	default:
		encoded, err := jsonutil.Marshal(b)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}
