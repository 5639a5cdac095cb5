package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite represents the optional vine.yml file controlling how features run.
// Browser and application settings always come from the environment; this
// file only shapes the godog suite.
type Suite struct {
	Paths       []string `yaml:"paths"`
	Tags        string   `yaml:"tags"`
	Format      string   `yaml:"format"`
	Concurrency int      `yaml:"concurrency"`
	FailFast    bool     `yaml:"fail_fast"`
	Randomize   bool     `yaml:"randomize"`
	// Scenario is a regex filter on scenario names.
	Scenario string `yaml:"scenario"`
}

// LoadSuite reads vine.yml. A missing file yields the defaults.
func LoadSuite(path string) (*Suite, error) {
	var s Suite

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.applyDefaults()
			return &s, nil
		}
		return nil, fmt.Errorf("reading suite file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing suite file: %w", err)
	}

	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("validating suite file: %w", err)
	}
	return &s, nil
}

func (s *Suite) applyDefaults() {
	if len(s.Paths) == 0 {
		s.Paths = []string{"features"}
	}
	if s.Format == "" {
		s.Format = "pretty"
	}
	if s.Concurrency == 0 {
		s.Concurrency = 1
	}
}

func (s *Suite) validate() error {
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	return nil
}
