// Package executor runs scenario batteries against a live target and
// compares actual status codes with expectations. Scenarios run
// concurrently under a semaphore with an optional request-rate cap;
// a failing scenario never aborts its siblings.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/duration"
	"github.com/apiprobe/apiprobe/pkg/httpclient"
	"github.com/apiprobe/apiprobe/pkg/iohelper"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
	"github.com/apiprobe/apiprobe/pkg/scenario"
)

// ErrEmptyBatch is returned when Run receives no scenarios.
var ErrEmptyBatch = errors.New("executor: empty scenario batch")

// Recorder receives per-request observations. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveRequest(scenarioName string, status int, passed bool, elapsed time.Duration)
}

// TestResult captures the outcome of a single scenario execution.
// Success holds only when the response status matched the expectation
// and no transport error occurred.
type TestResult struct {
	Scenario scenario.TestScenario `json:"scenario"`

	Success bool `json:"success"`

	// Status is the HTTP status received, or 0 if the request never
	// completed.
	Status int `json:"status"`

	ResponseTimeMs int64  `json:"responseTimeMs"`
	Error          string `json:"error,omitempty"`

	// Response is the parsed JSON body when the response parses as
	// JSON, the raw text otherwise.
	Response any `json:"response,omitempty"`

	// Payload is the request body actually sent.
	Payload string `json:"payload,omitempty"`
}

// Summary aggregates a report's results.
type Summary struct {
	Total             int   `json:"total"`
	Passed            int   `json:"passed"`
	Failed            int   `json:"failed"`
	AvgResponseTimeMs int64 `json:"avgResponseTimeMs"`
}

// Report is the full outcome of one battery run. Results preserve the
// order of the input scenarios.
type Report struct {
	RunID     string       `json:"runId"`
	Version   string       `json:"version"`
	Target    string       `json:"target"`
	StartedAt time.Time    `json:"startedAt"`
	Duration  string       `json:"duration"`
	Summary   Summary      `json:"summary"`
	Results   []TestResult `json:"results"`
}

// Config controls battery execution.
type Config struct {
	// Client used for all requests. Defaults to the shared pooled client.
	Client *http.Client

	// Concurrency is the maximum number of in-flight requests.
	Concurrency int

	// Timeout bounds each individual request.
	Timeout time.Duration

	// RateLimit caps requests per second across all workers. Zero
	// means unlimited.
	RateLimit float64

	// Recorder receives per-request metrics. Optional.
	Recorder Recorder

	// Logger for per-scenario diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Executor runs scenario batteries.
type Executor struct {
	client  *http.Client
	workers int
	timeout time.Duration
	limiter *rate.Limiter
	rec     Recorder
	log     *slog.Logger
}

// New creates an Executor from cfg, filling in defaults for zero fields.
func New(cfg Config) *Executor {
	client := cfg.Client
	if client == nil {
		client = httpclient.Default()
	}
	workers := cfg.Concurrency
	if workers <= 0 {
		workers = defaults.ConcurrencyMedium
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = duration.HTTPTesting
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		client:  client,
		workers: workers,
		timeout: timeout,
		limiter: limiter,
		rec:     cfg.Recorder,
		log:     log,
	}
}

// Run executes all scenarios and returns a report. Each result lands in
// the slot matching its scenario's index, so the report order matches
// the input regardless of completion order. The context cancels
// scenarios that have not started; in-flight requests also observe it.
func (e *Executor) Run(ctx context.Context, target string, scenarios []scenario.TestScenario) (*Report, error) {
	if len(scenarios) == 0 {
		return nil, ErrEmptyBatch
	}

	started := time.Now()
	results := make([]TestResult, len(scenarios))

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, s := range scenarios {
		if ctx.Err() != nil {
			results[i] = skippedResult(s, ctx.Err())
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, sc scenario.TestScenario) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = e.execute(ctx, sc)
		}(i, s)
	}
	wg.Wait()

	report := &Report{
		RunID:     uuid.NewString(),
		Version:   defaults.Version,
		Target:    target,
		StartedAt: started,
		Duration:  time.Since(started).Round(time.Millisecond).String(),
		Results:   results,
	}
	report.Summary = summarize(results)
	return report, nil
}

func summarize(results []TestResult) Summary {
	s := Summary{Total: len(results)}
	var totalMs int64
	for _, r := range results {
		if r.Success {
			s.Passed++
		} else {
			s.Failed++
		}
		totalMs += r.ResponseTimeMs
	}
	if s.Total > 0 {
		s.AvgResponseTimeMs = int64(math.Round(float64(totalMs) / float64(s.Total)))
	}
	return s
}

func skippedResult(s scenario.TestScenario, err error) TestResult {
	return TestResult{
		Scenario: s,
		Error:    fmt.Sprintf("skipped: %v", err),
	}
}

// expectedStatus resolves a scenario's expectation, falling back to the
// method-derived default when the scenario carries none.
func expectedStatus(s scenario.TestScenario) int {
	if s.ExpectedStatus > 0 {
		return s.ExpectedStatus
	}
	return defaults.ExpectedStatus(s.Method)
}

// execute performs one scenario request. Invalid URLs and transport
// failures become failed results with Status 0.
func (e *Executor) execute(ctx context.Context, s scenario.TestScenario) TestResult {
	result := TestResult{
		Scenario: s,
		Payload:  s.Body,
	}

	if err := validateURL(s.URL); err != nil {
		result.Error = err.Error()
		e.observe(s.Name, 0, false, 0)
		return result
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			result.Error = fmt.Sprintf("rate limiter: %v", err)
			e.observe(s.Name, 0, false, 0)
			return result
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, s.Method, s.URL, strings.NewReader(s.Body))
	if err != nil {
		result.Error = fmt.Sprintf("build request: %v", err)
		e.observe(s.Name, 0, false, 0)
		return result
	}
	applyHeaders(req, s)

	start := time.Now()
	resp, err := e.client.Do(req)
	elapsed := time.Since(start)
	result.ResponseTimeMs = elapsed.Milliseconds()

	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		e.log.Debug("scenario transport failure",
			"scenario", s.Name, "url", s.URL, "error", err)
		e.observe(s.Name, 0, false, elapsed)
		return result
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	result.Success = resp.StatusCode == expectedStatus(s)
	result.Response = readResponse(resp)

	e.observe(s.Name, resp.StatusCode, result.Success, elapsed)
	return result
}

// readResponse decodes the body as JSON when possible, falling back to
// the raw text.
func readResponse(resp *http.Response) any {
	body, err := iohelper.ReadBodyDefault(resp.Body)
	if err != nil || len(body) == 0 {
		return nil
	}
	var parsed any
	if jsonutil.Unmarshal(body, &parsed) == nil {
		return parsed
	}
	return string(body)
}

func (e *Executor) observe(name string, status int, passed bool, elapsed time.Duration) {
	if e.rec != nil {
		e.rec.ObserveRequest(name, status, passed, elapsed)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url: missing host")
	}
	return nil
}

// applyHeaders copies scenario headers onto req and fills gaps:
// User-Agent and Accept when absent, and a Content-Type inferred from
// the body shape when a body is present without one. Scenario values
// always win.
func applyHeaders(req *http.Request, s scenario.TestScenario) {
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaults.UAMinimal)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", defaults.AcceptAny)
	}
	if s.Body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", inferContentType(s.Body))
	}
}

func inferContentType(body string) string {
	trimmed := strings.TrimSpace(body)
	if jsonutil.Valid([]byte(trimmed)) {
		return defaults.ContentTypeJSON
	}
	if strings.Contains(trimmed, "=") && strings.Contains(trimmed, "&") {
		return defaults.ContentTypeForm
	}
	return defaults.ContentTypeText
}
