package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSuiteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vine.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSuiteMissingFileYieldsDefaults(t *testing.T) {
	s, err := LoadSuite(filepath.Join(t.TempDir(), "vine.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Paths) != 1 || s.Paths[0] != "features" {
		t.Errorf("Paths = %v, want [features]", s.Paths)
	}
	if s.Format != "pretty" {
		t.Errorf("Format = %q, want pretty", s.Format)
	}
	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", s.Concurrency)
	}
	if s.FailFast || s.Randomize {
		t.Error("FailFast/Randomize default on")
	}
}

func TestLoadSuite(t *testing.T) {
	path := writeSuiteFile(t, `
paths:
  - features/smoke
  - features/regression
tags: "@smoke && !@wip"
format: vine
concurrency: 2
fail_fast: true
scenario: "valid credentials"
`)

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Paths) != 2 || s.Paths[1] != "features/regression" {
		t.Errorf("Paths = %v", s.Paths)
	}
	if s.Tags != "@smoke && !@wip" {
		t.Errorf("Tags = %q", s.Tags)
	}
	if s.Format != "vine" {
		t.Errorf("Format = %q", s.Format)
	}
	if s.Concurrency != 2 {
		t.Errorf("Concurrency = %d", s.Concurrency)
	}
	if !s.FailFast {
		t.Error("FailFast not set")
	}
	if s.Scenario != "valid credentials" {
		t.Errorf("Scenario = %q", s.Scenario)
	}
}

func TestLoadSuiteExpandsEnvironment(t *testing.T) {
	t.Setenv("SUITE_TAGS", "@smoke")
	path := writeSuiteFile(t, "tags: \"${SUITE_TAGS}\"\n")

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Tags != "@smoke" {
		t.Errorf("Tags = %q, want @smoke from the environment", s.Tags)
	}
}

func TestLoadSuiteRejectsBadConcurrency(t *testing.T) {
	path := writeSuiteFile(t, "concurrency: -1\n")

	if _, err := LoadSuite(path); err == nil {
		t.Fatal("expected error for negative concurrency")
	}
}

func TestLoadSuiteRejectsMalformedYAML(t *testing.T) {
	path := writeSuiteFile(t, "paths: [unclosed\n")

	if _, err := LoadSuite(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
