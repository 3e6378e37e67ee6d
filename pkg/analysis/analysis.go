// Package analysis synthesizes a deterministic assessment of a battery
// report. It is the local fallback when the external analysis service
// fails or returns text that cannot be coerced into a valid structure,
// and depends only on the report's summary statistics and per-result
// status and timing.
package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/apiprobe/apiprobe/pkg/duration"
	"github.com/apiprobe/apiprobe/pkg/executor"
)

// Performance rating buckets.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingAverage   = "average"
	RatingPoor      = "poor"
)

// Analysis is the structured assessment of a battery run.
type Analysis struct {
	Summary           string   `json:"summary"`
	PerformanceRating string   `json:"performanceRating"`
	SecurityIssues    []string `json:"securityIssues"`
	Recommendations   []string `json:"recommendations"`
	ReliabilityScore  int      `json:"reliabilityScore"`
}

// Summarize builds an Analysis from the report alone.
func Summarize(report *executor.Report) *Analysis {
	s := report.Summary

	passRate := 0.0
	if s.Total > 0 {
		passRate = float64(s.Passed) / float64(s.Total) * 100
	}

	a := &Analysis{
		Summary: fmt.Sprintf("%d of %d scenarios passed (%.0f%%) with an average response time of %dms",
			s.Passed, s.Total, passRate, s.AvgResponseTimeMs),
		PerformanceRating: RateResponseTime(s.AvgResponseTimeMs),
		ReliabilityScore:  reliabilityScore(passRate),
	}

	a.SecurityIssues = securityIssues(report)
	a.Recommendations = recommendations(report, a)
	return a
}

// RateResponseTime buckets an average response time.
func RateResponseTime(avgMs int64) string {
	avg := time.Duration(avgMs) * time.Millisecond
	switch {
	case avg < duration.ResponseExcellent:
		return RatingExcellent
	case avg < duration.ResponseGood:
		return RatingGood
	case avg < duration.ResponseAverage:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// reliabilityScore maps a pass-rate percentage onto a 1..10 scale.
func reliabilityScore(passRate float64) int {
	score := int(math.Round(passRate / 10))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func securityIssues(report *executor.Report) []string {
	var issues []string
	for _, r := range report.Results {
		if r.Status == 401 {
			issues = append(issues,
				fmt.Sprintf("scenario %q received 401 Unauthorized: verify authentication handling on this endpoint", r.Scenario.Name))
			break
		}
	}
	return issues
}

func recommendations(report *executor.Report, a *Analysis) []string {
	var recs []string

	var transportFailures, expectationMisses int
	for _, r := range report.Results {
		switch {
		case r.Error != "":
			transportFailures++
		case !r.Success:
			expectationMisses++
		}
	}

	if transportFailures > 0 {
		recs = append(recs, fmt.Sprintf("%d scenario(s) never completed; check target availability and network path", transportFailures))
	}
	if expectationMisses > 0 {
		recs = append(recs, fmt.Sprintf("%d scenario(s) returned an unexpected status; review the endpoint's validation and error responses", expectationMisses))
	}
	if a.PerformanceRating == RatingPoor || a.PerformanceRating == RatingAverage {
		recs = append(recs, "average response time is high; consider profiling the endpoint under load")
	}
	if len(recs) == 0 {
		recs = append(recs, "all scenarios behaved as expected; no action required")
	}
	return recs
}
