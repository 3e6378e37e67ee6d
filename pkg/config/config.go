package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/apiprobe/apiprobe/pkg/defaults"
	"github.com/apiprobe/apiprobe/pkg/duration"
	"github.com/apiprobe/apiprobe/pkg/input"
	"github.com/apiprobe/apiprobe/pkg/llm"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

// Config holds all CLI configuration options
type Config struct {
	// Input settings
	Request     input.RequestSource
	Explanation string
	Static      input.KeyValueFlag // Repeated -static name=value pairs

	// Generation settings
	Provider    string // openai, anthropic, none
	ProfileFile string // YAML profile: data pools + static attributes

	// Execution settings
	Concurrency int           // Number of parallel workers (default: 10)
	RateLimit   float64       // Requests per second (0 = unlimited)
	Timeout     time.Duration // Per-request timeout (default: 30s)
	SkipVerify  bool          // Skip TLS verification

	// Output settings
	OutputFile   string // Output file path (empty = stdout report only)
	OutputFormat string // console, json
	Verbose      bool
	Silent       bool
	NoColor      bool

	// Observability
	MetricsPort int // Prometheus endpoint port (0 = disabled)
}

// ParseFlags parses command-line flags into a validated Config.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	// === INPUT ===
	flag.StringVar(&cfg.Request.Inline, "request", "", "Captured curl-style request string")
	flag.StringVar(&cfg.Request.Inline, "r", "", "Request (alias)")
	flag.StringVar(&cfg.Request.File, "request-file", "", "File containing the request string")
	flag.BoolVar(&cfg.Request.Stdin, "stdin", false, "Read the request string from stdin")
	flag.StringVar(&cfg.Explanation, "explanation", "", "Business context for the endpoint (required)")
	flag.StringVar(&cfg.Explanation, "e", "", "Explanation (alias)")
	flag.Var(&cfg.Static, "static", "Pin a payload field: name=value (repeatable)")

	// === GENERATION ===
	flag.StringVar(&cfg.Provider, "provider", string(llm.ProviderNone), "LLM provider: openai, anthropic, none")
	flag.StringVar(&cfg.ProfileFile, "profile", "", "YAML profile with data pools and static attributes")

	// === EXECUTION ===
	flag.IntVar(&cfg.Concurrency, "concurrency", defaults.ConcurrencyMedium, "Number of parallel workers")
	flag.IntVar(&cfg.Concurrency, "c", defaults.ConcurrencyMedium, "Concurrency (alias)")
	flag.Float64Var(&cfg.RateLimit, "rate", 0, "Requests per second (0 = unlimited)")
	timeout := flag.Int("timeout", int(duration.HTTPTesting.Seconds()), "Per-request timeout in seconds")
	flag.BoolVar(&cfg.SkipVerify, "skip-verify", false, "Skip TLS verification")
	flag.BoolVar(&cfg.SkipVerify, "k", false, "Skip TLS (alias)")

	// === OUTPUT ===
	flag.StringVar(&cfg.OutputFile, "output", "", "Write the JSON report to a file")
	flag.StringVar(&cfg.OutputFile, "o", "", "Output file (alias)")
	flag.StringVar(&cfg.OutputFormat, "format", "console", "Output format: console, json")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")
	flag.BoolVar(&cfg.Silent, "silent", false, "Silent mode - results only")
	flag.BoolVar(&cfg.Silent, "s", false, "Silent (alias)")
	flag.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")

	// === OBSERVABILITY ===
	flag.IntVar(&cfg.MetricsPort, "metrics-port", 0, "Serve Prometheus metrics on this port (0 = disabled)")

	flag.Parse()

	cfg.Timeout = time.Duration(*timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and cross-field constraints. Request
// presence is checked lazily by Request.Get so stdin piping still works.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Explanation) == "" {
		return fmt.Errorf("%w: explanation (-explanation)", ErrMissingRequired)
	}
	switch llm.Provider(c.Provider) {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderNone, "":
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider)
	}
	switch c.OutputFormat {
	case "console", "json", "":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.OutputFormat)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1", ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate must be >= 0", ErrInvalidConfig)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("%w: metrics-port out of range", ErrInvalidConfig)
	}
	return nil
}

// StaticAttributes merges profile attributes with -static flags; a flag
// with the same name overrides the profile.
func (c *Config) StaticAttributes(profile *Profile) []synthdata.StaticAttribute {
	var out []synthdata.StaticAttribute
	seen := make(map[string]int)

	if profile != nil {
		for _, attr := range profile.StaticAttributes {
			seen[attr.Name] = len(out)
			out = append(out, attr)
		}
	}
	for _, kv := range c.Static {
		attr := synthdata.StaticAttribute{Name: kv.Name, Value: kv.Value}
		if i, ok := seen[kv.Name]; ok {
			out[i] = attr
			continue
		}
		seen[kv.Name] = len(out)
		out = append(out, attr)
	}
	return out
}

// LoadEnv loads a .env file when one exists. Absence is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}
