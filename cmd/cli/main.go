// Command apiprobe turns a captured curl-style request into a battery
// of API test scenarios, executes them against the live target, and
// reports expected-versus-actual outcomes with an analysis.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apiprobe/apiprobe/pkg/analysis"
	"github.com/apiprobe/apiprobe/pkg/apicontext"
	"github.com/apiprobe/apiprobe/pkg/apitest"
	"github.com/apiprobe/apiprobe/pkg/config"
	"github.com/apiprobe/apiprobe/pkg/curlparse"
	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/executor"
	"github.com/apiprobe/apiprobe/pkg/httpclient"
	"github.com/apiprobe/apiprobe/pkg/jsonutil"
	"github.com/apiprobe/apiprobe/pkg/llm"
	"github.com/apiprobe/apiprobe/pkg/metrics"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
	"github.com/apiprobe/apiprobe/pkg/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.LoadEnv()

	cfg, err := config.ParseFlags()
	if err != nil {
		ui.PrintError(err.Error())
		return defaults.ExitUserError
	}

	ui.SetSilent(cfg.Silent)
	ui.SetNoColor(cfg.NoColor)

	logLevel := slog.LevelWarn
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ui.PrintBanner()

	requestString, err := cfg.Request.Get()
	if err != nil {
		ui.PrintError(err.Error())
		return defaults.ExitUserError
	}
	var profile *config.Profile
	if cfg.ProfileFile != "" {
		profile, err = config.LoadProfile(cfg.ProfileFile)
		if err != nil {
			ui.PrintError(err.Error())
			return defaults.ExitUserError
		}
	}

	client, err := llm.FromEnv(llm.Provider(cfg.Provider))
	if err != nil {
		ui.PrintError(err.Error())
		return defaults.ExitUserError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parsed := curlparse.Parse(requestString)
	apiCtx := apicontext.Classify(parsed)

	ui.PrintConfigBanner(map[string]string{
		"Target":      parsed.URL,
		"Method":      parsed.Method,
		"Domain":      string(apiCtx.Domain),
		"Provider":    cfg.Provider,
		"Concurrency": fmt.Sprintf("%d", cfg.Concurrency),
		"Rate Limit":  rateLabel(cfg.RateLimit),
		"Timeout":     cfg.Timeout.String(),
		"Output":      cfg.OutputFile,
		"Format":      cfg.OutputFormat,
		"Metrics":     metricsLabel(cfg.MetricsPort),
	})

	var pools *synthdata.Pools
	if profile != nil {
		pools = profile.Pools
	}

	opts := apitest.Options{
		Client: client,
		Pools:  pools,
		Logger: logger,
	}

	scenarios, err := apitest.GenerateScenarios(ctx, apitest.GenerationRequest{
		RequestString:    requestString,
		Explanation:      cfg.Explanation,
		StaticAttributes: cfg.StaticAttributes(profile),
	}, opts)
	if err != nil {
		ui.PrintError(err.Error())
		if errors.Is(err, apitest.ErrMissingRequest) || errors.Is(err, apitest.ErrMissingExplanation) {
			return defaults.ExitUserError
		}
		return defaults.ExitInternalError
	}
	ui.PrintInfo(fmt.Sprintf("%d scenarios ready", len(scenarios)))

	var recorder executor.Recorder
	if cfg.MetricsPort > 0 {
		srv, merr := metrics.NewServer(metrics.Options{Port: cfg.MetricsPort})
		if merr != nil {
			ui.PrintError(merr.Error())
			return defaults.ExitInternalError
		}
		defer srv.Close()
		recorder = srv
		ui.PrintInfo("metrics at " + srv.Addr())
	}

	exec := executor.New(executor.Config{
		Client: httpclient.New(httpclient.Config{
			Timeout:            cfg.Timeout,
			InsecureSkipVerify: cfg.SkipVerify,
		}),
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
		RateLimit:   cfg.RateLimit,
		Recorder:    recorder,
		Logger:      logger,
	})

	started := time.Now()
	stopSpinner := ui.StartSpinner(fmt.Sprintf("running %d scenarios against %s", len(scenarios), parsed.URL))
	report, err := exec.Run(ctx, parsed.URL, scenarios)
	stopSpinner()
	if err != nil {
		ui.PrintError(err.Error())
		return defaults.ExitInternalError
	}
	logger.Debug("battery finished", "elapsed", time.Since(started))

	if allTransportFailures(report) {
		ui.PrintWarning("no scenario reached the target")
	}

	result := apitest.Analyze(ctx, report, opts)

	if cfg.OutputFormat == "json" {
		if err := writeJSON(os.Stdout, report, result); err != nil {
			ui.PrintError(err.Error())
			return defaults.ExitInternalError
		}
	} else {
		ui.NewReportRenderer(os.Stderr, cfg.Verbose).Render(report, result)
	}

	if cfg.OutputFile != "" {
		if err := writeJSONFile(cfg.OutputFile, report, result); err != nil {
			ui.PrintError(err.Error())
			return defaults.ExitInternalError
		}
		ui.PrintSuccess("report written to " + cfg.OutputFile)
	}

	switch {
	case allTransportFailures(report):
		return defaults.ExitNetworkError
	case report.Summary.Failed > 0:
		return defaults.ExitTestsFailed
	}
	return defaults.ExitSuccess
}

// fullReport is the JSON output document.
type fullReport struct {
	*executor.Report
	Analysis *analysis.Analysis `json:"analysis,omitempty"`
}

func writeJSON(w *os.File, report *executor.Report, a *analysis.Analysis) error {
	return jsonutil.MarshalWrite(w, fullReport{Report: report, Analysis: a})
}

func writeJSONFile(path string, report *executor.Report, a *analysis.Analysis) error {
	data, err := jsonutil.MarshalIndent(fullReport{Report: report, Analysis: a}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func allTransportFailures(report *executor.Report) bool {
	for _, r := range report.Results {
		if r.Error == "" {
			return false
		}
	}
	return len(report.Results) > 0
}

func rateLabel(rate float64) string {
	if rate <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%.0f rps", rate)
}

func metricsLabel(port int) string {
	if port <= 0 {
		return ""
	}
	return fmt.Sprintf(":%d", port)
}
