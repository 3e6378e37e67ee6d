package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiprobe/apiprobe/pkg/input"
	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

func validConfig() *Config {
	return &Config{
		Explanation:  "registers a new user account",
		Provider:     "none",
		OutputFormat: "console",
		Concurrency:  10,
		Timeout:      30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	bad := validConfig()
	bad.Explanation = "  "
	assert.ErrorIs(t, bad.Validate(), ErrMissingRequired)

	bad = validConfig()
	bad.Provider = "skynet"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = validConfig()
	bad.OutputFormat = "xml"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = validConfig()
	bad.Concurrency = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = validConfig()
	bad.RateLimit = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = validConfig()
	bad.MetricsPort = 70000
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestStaticAttributesFlagOverridesProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Static = input.KeyValueFlag{
		{Name: "email", Value: "flag@corp.example"},
		{Name: "tenant", Value: "acme"},
	}
	profile := &Profile{
		StaticAttributes: []synthdata.StaticAttribute{
			{Name: "email", Value: "profile@corp.example"},
			{Name: "region", Value: "eu-west-1"},
		},
	}

	got := cfg.StaticAttributes(profile)

	require.Len(t, got, 3)
	assert.Equal(t, synthdata.StaticAttribute{Name: "email", Value: "flag@corp.example"}, got[0])
	assert.Equal(t, "region", got[1].Name)
	assert.Equal(t, "tenant", got[2].Name)
}

func TestStaticAttributesNoProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Static = input.KeyValueFlag{{Name: "a", Value: "1"}}
	got := cfg.StaticAttributes(nil)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	doc := `
pools:
  first_names: [Anna, Bruno]
  last_names: [Keller]
static_attributes:
  - name: tenant
    value: acme
  - name: locale
    value: de-CH
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.NotNil(t, p.Pools)
	assert.Equal(t, []string{"Anna", "Bruno"}, p.Pools.FirstNames)
	require.Len(t, p.StaticAttributes, 2)
	assert.Equal(t, "tenant", p.StaticAttributes[0].Name)
	assert.Equal(t, "acme", p.StaticAttributes[0].Value)
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile("/nonexistent/profile.yaml")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
	_, err = LoadProfile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	path2 := filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(path2, []byte("static_attributes:\n  - value: x\n"), 0o644))
	_, err = LoadProfile(path2)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
