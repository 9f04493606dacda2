package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: test
mode: mock
server:
  port: 8080
fixtures:
  seed: 42
  length: 365
  start_date: "2023-01-01"
  backend: none
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Fixtures.Seed != 42 || c.Fixtures.Length != 365 {
		t.Fatalf("unexpected fixtures config: %+v", c.Fixtures)
	}
	if !c.IsMock() {
		t.Fatalf("expected mock mode")
	}
}

func TestLoadRejectsBadMode(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
mode: staging
fixtures:
  seed: 1
  length: 10
  backend: none
`))
	if err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

func TestIntegrationModeRequiresVerifier(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
mode: integration
fixtures:
  seed: 1
  length: 10
  backend: none
`))
	if err == nil {
		t.Fatalf("expected error for missing verifier url")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TEST_MODE", "mock")
	t.Setenv("RANDOM_SEED", "7")
	t.Setenv("BACKEND", "none")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if c.Fixtures.Seed != 7 {
		t.Fatalf("expected seed override 7, got %d", c.Fixtures.Seed)
	}
}

func TestLoadWithEnvRejectsBadSeed(t *testing.T) {
	t.Setenv("RANDOM_SEED", "not-a-number")
	if _, err := LoadWithEnv(writeConfig(t, validYAML)); err == nil {
		t.Fatalf("expected error for non-integer RANDOM_SEED")
	}
}
