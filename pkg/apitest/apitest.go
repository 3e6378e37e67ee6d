// Package apitest is the orchestration layer: it turns a captured
// request string plus a business explanation into an executable
// scenario battery, and a finished report into an analysis. External
// LLM calls are best-effort; every path has a deterministic local
// fallback and no call is ever retried.
package apitest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apiprobe/apiprobe/pkg/analysis"
	"github.com/apiprobe/apiprobe/pkg/apicontext"
	"github.com/apiprobe/apiprobe/pkg/curlparse"
	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/executor"
	"github.com/apiprobe/apiprobe/pkg/llm"
	"github.com/apiprobe/apiprobe/pkg/scenario"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

// Validation errors, reported to the caller before any processing.
var (
	ErrMissingRequest     = errors.New("apitest: request string is required")
	ErrMissingExplanation = errors.New("apitest: explanation is required")
)

// GenerationRequest is the scenario-generation input.
type GenerationRequest struct {
	// RequestString is the captured curl-style request.
	RequestString string

	// Explanation is the mandatory free-text business context.
	Explanation string

	// StaticAttributes pin payload fields to fixed values.
	StaticAttributes []synthdata.StaticAttribute
}

// Options configures the orchestration layer.
type Options struct {
	// Client is the LLM client. Nil forces the deterministic path.
	Client llm.Client

	// Pools overrides the synthetic data pools.
	Pools *synthdata.Pools

	// Nonce fixes the fallback builder's nonce. Zero means wall clock.
	Nonce int64

	// Logger for diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// GenerateScenarios produces an ordered scenario battery for req.
// Missing inputs fail immediately; an unreachable LLM or a malformed
// completion degrades to the deterministic builder and is only logged.
func GenerateScenarios(ctx context.Context, req GenerationRequest, opts Options) (out []scenario.TestScenario, err error) {
	if strings.TrimSpace(req.RequestString) == "" {
		return nil, ErrMissingRequest
	}
	if strings.TrimSpace(req.Explanation) == "" {
		return nil, ErrMissingExplanation
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("apitest: internal error: %v", r)
		}
	}()

	parsed := curlparse.Parse(req.RequestString)
	apiCtx := apicontext.Classify(parsed)
	log := opts.logger()

	if opts.Client != nil {
		prompt := llm.GenerationPrompt(parsed, apiCtx, req.Explanation, req.StaticAttributes)
		completion, cerr := opts.Client.Complete(ctx, prompt, defaults.CompletionBudget)
		if cerr == nil {
			scenarios, perr := llm.ParseScenarios(completion)
			if perr == nil {
				log.Info("scenarios generated",
					"provider", opts.Client.Provider(), "count", len(scenarios))
				return scenarios, nil
			}
			log.Warn("discarding malformed completion, using fallback battery", "error", perr)
		} else {
			log.Warn("generation call failed, using fallback battery", "error", cerr)
		}
	}

	builder := scenario.NewBuilder(synthdata.NewGenerator(opts.Pools))
	builder.Nonce = opts.Nonce
	battery := builder.Build(parsed, apiCtx, req.StaticAttributes)
	log.Info("fallback battery built", "domain", apiCtx.Domain, "count", len(battery))
	return battery, nil
}

// Analyze assesses a finished report. An unreachable LLM or a
// malformed completion degrades to the deterministic summary; Analyze
// never fails.
func Analyze(ctx context.Context, report *executor.Report, opts Options) *analysis.Analysis {
	log := opts.logger()

	if opts.Client != nil {
		prompt := llm.AnalysisPrompt(report)
		completion, cerr := opts.Client.Complete(ctx, prompt, defaults.CompletionBudget)
		if cerr == nil {
			a, perr := llm.ParseAnalysis(completion)
			if perr == nil {
				return a
			}
			log.Warn("discarding malformed analysis, using deterministic summary", "error", perr)
		} else {
			log.Warn("analysis call failed, using deterministic summary", "error", cerr)
		}
	}

	return analysis.Summarize(report)
}
