package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds tool defaults that can be overridden per-invocation by
// command flags.
type Config struct {
	// maximum cue duration in seconds for split/rebuild
	MaxCueDuration float64 `yaml:"max_cue_duration"`

	// fallback HLS segment duration when the playlist has no EXTINF tags
	SegmentDuration float64 `yaml:"segment_duration"`

	// rebuild cue boundaries from the word stream when parsing
	RebuildCues bool `yaml:"rebuild_cues"`

	// clean raw VTT text before parsing
	CleanContent bool `yaml:"clean_content"`
}

func Default() *Config {
	return &Config{
		MaxCueDuration:  2.0,
		SegmentDuration: 5.0,
		RebuildCues:     true,
		CleanContent:    true,
	}
}

// Load reads a YAML config file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxCueDuration <= 0 {
		return fmt.Errorf("max_cue_duration must be positive, got %v", c.MaxCueDuration)
	}
	if c.SegmentDuration <= 0 {
		return fmt.Errorf("segment_duration must be positive, got %v", c.SegmentDuration)
	}
	return nil
}
