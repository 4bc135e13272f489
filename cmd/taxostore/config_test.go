package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/taxostore/taxostore"
)

func TestConfigPrecedence(t *testing.T) {
	populated := fixtureDir(t)
	empty := t.TempDir()

	configPath := filepath.Join(t.TempDir(), "taxostore.yaml")
	config := "data-dir: " + populated + "\nformat: json\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	count := func(t *testing.T, args ...string) int {
		t.Helper()
		return decode[taxostore.Stats](t, mustRun(t, append(args, "stats")...)).LiteratureCount
	}

	t.Run("ConfigFile", func(t *testing.T) {
		if got := count(t, "--config", configPath); got != 3 {
			t.Errorf("Expected config data-dir to be used, got %d records", got)
		}
	})

	t.Run("TAXOSTORE_CONFIG", func(t *testing.T) {
		t.Setenv("TAXOSTORE_CONFIG", configPath)
		if got := count(t); got != 3 {
			t.Errorf("Expected TAXOSTORE_CONFIG to be read, got %d records", got)
		}
	})

	t.Run("EnvOverridesConfig", func(t *testing.T) {
		t.Setenv("TAXOSTORE_DATA_DIR", empty)
		if got := count(t, "--config", configPath); got != 0 {
			t.Errorf("Expected TAXOSTORE_DATA_DIR to win over the config file, got %d records", got)
		}
	})

	t.Run("FlagOverridesEnv", func(t *testing.T) {
		t.Setenv("TAXOSTORE_DATA_DIR", empty)
		if got := count(t, "--config", configPath, "--data-dir", populated); got != 3 {
			t.Errorf("Expected --data-dir to win over the environment, got %d records", got)
		}
	})
}

func TestConfigCollectionFileNames(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "taxostore.yaml")
	config := "data-dir: " + dir + "\nliterature-file: refs.json\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	mustRun(t, "--config", configPath, "literature", "add", "--title", "Renamed")
	if _, err := os.Stat(filepath.Join(dir, "refs.json")); err != nil {
		t.Errorf("Expected literature in refs.json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, taxostore.DefaultLiteratureFile)); !os.IsNotExist(err) {
		t.Errorf("Expected no %s, got %v", taxostore.DefaultLiteratureFile, err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	res := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "stats")
	if res.err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	res := run(t, "", "-d", fixtureDir(t), "-v", "--log-level", "info", "check")
	if res.err != nil {
		t.Fatalf("check failed: %v", res.err)
	}
	if !strings.Contains(res.stderr, "reference check") {
		t.Errorf("Expected log line on stderr, got %q", res.stderr)
	}
}
