package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Server.ApiAddr != ":7399" {
		t.Errorf("ApiAddr = %q, want %q", config.Server.ApiAddr, ":7399")
	}
	if config.Server.ModelOrder != 2 {
		t.Errorf("ModelOrder = %d, want 2", config.Server.ModelOrder)
	}
	if config.Generation.MaxLength != 50 {
		t.Errorf("Generation.MaxLength = %d, want 50", config.Generation.MaxLength)
	}

	// The defaults are written back so operators have a file to edit.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected a default config file to be written: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "server_config": {"api_addr": ":9000", "model_order": 3},
  "generation_config": {"min_length": 5, "max_length": 25, "temperature": 0.8, "end_on_sentence": false}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Server.ApiAddr != ":9000" {
		t.Errorf("ApiAddr = %q, want %q", config.Server.ApiAddr, ":9000")
	}
	if config.Server.ModelOrder != 3 {
		t.Errorf("ModelOrder = %d, want 3", config.Server.ModelOrder)
	}
	if config.Generation.Temperature != 0.8 {
		t.Errorf("Generation.Temperature = %g, want 0.8", config.Generation.Temperature)
	}
	if config.Generation.EndOnSentence {
		t.Error("Generation.EndOnSentence should be overridden to false")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed config JSON, got nil")
	}
}
