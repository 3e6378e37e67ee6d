package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/apiprobe/apiprobe/pkg/analysis"
	"github.com/apiprobe/apiprobe/pkg/executor"
)

// ReportRenderer renders a finished battery report for the terminal.
type ReportRenderer struct {
	verbose bool
	w       io.Writer
}

// NewReportRenderer creates a renderer writing to w.
func NewReportRenderer(w io.Writer, verbose bool) *ReportRenderer {
	return &ReportRenderer{verbose: verbose, w: w}
}

// Render writes every result line, the summary block, and the analysis.
func (rr *ReportRenderer) Render(report *executor.Report, a *analysis.Analysis) {
	fmt.Fprintln(rr.w)
	fmt.Fprintln(rr.w, SectionStyle.Render("> Results"))

	for _, r := range report.Results {
		fmt.Fprintln(rr.w, rr.formatResult(r))
	}

	rr.renderSummary(report)
	if a != nil {
		rr.renderAnalysis(a)
	}
}

// formatResult renders one line:
// [outcome] scenario-name [status] [latency] (error)
func (rr *ReportRenderer) formatResult(r executor.TestResult) string {
	var parts []string

	outcome := outcomeFor(r)
	parts = append(parts, BracketStyle.Render("[")+OutcomeStyle(outcome).Render(outcome)+BracketStyle.Render("]"))
	parts = append(parts, StatValueStyle.Render(SanitizeString(r.Scenario.Name)))
	parts = append(parts, BracketStyle.Render("[")+StatusCodeStyle(r.Status).Render(fmt.Sprintf("%d", r.Status))+BracketStyle.Render("]"))
	parts = append(parts, BracketStyle.Render("[")+StatLabelStyle.Render(formatLatency(r.ResponseTimeMs))+BracketStyle.Render("]"))

	line := strings.Join(parts, " ")

	if r.Error != "" {
		line += " " + SubtitleStyle.Render(truncateString(SanitizeString(r.Error), 60))
	}
	if rr.verbose && r.Payload != "" {
		line += "\n      " + SubtitleStyle.Render("-> "+truncateString(r.Payload, 80))
	}
	return line
}

func outcomeFor(r executor.TestResult) string {
	switch {
	case r.Error != "":
		return "error"
	case r.Success:
		return "pass"
	default:
		return "fail"
	}
}

func (rr *ReportRenderer) renderSummary(report *executor.Report) {
	s := report.Summary

	fmt.Fprintln(rr.w)
	fmt.Fprintln(rr.w, SectionStyle.Render("> Summary"))
	fmt.Fprintf(rr.w, "  %s %s\n", StatLabelStyle.Render("Run:"), StatValueStyle.Render(report.RunID))
	fmt.Fprintf(rr.w, "  %s %s\n", StatLabelStyle.Render("Target:"), URLStyle.Render(report.Target))
	fmt.Fprintf(rr.w, "  %s %s / %s passed, %s failed\n",
		StatLabelStyle.Render("Scenarios:"),
		PassStyle.Render(fmt.Sprintf("%d", s.Passed)),
		StatValueStyle.Render(fmt.Sprintf("%d", s.Total)),
		FailStyle.Render(fmt.Sprintf("%d", s.Failed)))
	fmt.Fprintf(rr.w, "  %s %s avg, %s total\n",
		StatLabelStyle.Render("Timing:"),
		StatValueStyle.Render(formatLatency(s.AvgResponseTimeMs)),
		StatValueStyle.Render(report.Duration))
}

func (rr *ReportRenderer) renderAnalysis(a *analysis.Analysis) {
	fmt.Fprintln(rr.w)
	fmt.Fprintln(rr.w, SectionStyle.Render("> Analysis"))
	fmt.Fprintf(rr.w, "  %s\n", ConfigValueStyle.Render(a.Summary))
	fmt.Fprintf(rr.w, "  %s %s\n",
		StatLabelStyle.Render("Performance:"),
		RatingStyle(a.PerformanceRating).Render(a.PerformanceRating))
	fmt.Fprintf(rr.w, "  %s %s\n",
		StatLabelStyle.Render("Reliability:"),
		StatValueStyle.Render(fmt.Sprintf("%d/10", a.ReliabilityScore)))

	for _, issue := range a.SecurityIssues {
		fmt.Fprintln(rr.w, FailStyle.Render("  [!] ")+ConfigValueStyle.Render(issue))
	}
	for _, rec := range a.Recommendations {
		fmt.Fprintln(rr.w, HelpStyle.Render("  [i] "+rec))
	}
}

func formatLatency(ms int64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
