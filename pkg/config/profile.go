package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apiprobe/apiprobe/pkg/synthdata"
)

// Profile is an optional YAML document customizing synthetic data
// generation: replacement data pools (per locale or domain) and
// pre-pinned static attributes.
type Profile struct {
	Pools            *synthdata.Pools            `yaml:"pools"`
	StaticAttributes []synthdata.StaticAttribute `yaml:"static_attributes"`
}

// LoadProfile reads and validates a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: parse profile: %v", ErrInvalidConfig, err)
	}

	for _, attr := range p.StaticAttributes {
		if attr.Name == "" {
			return nil, fmt.Errorf("%w: static attribute with empty name", ErrInvalidConfig)
		}
	}
	return &p, nil
}
