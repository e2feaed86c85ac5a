package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// ServerConfig holds the configuration for the HTTP server and its stores.
type ServerConfig struct {
	ApiAddr            string `json:"api_addr"`
	LogLevel           string `json:"log_level"`
	DataDir            string `json:"data_dir"`
	CorpusDatabasePath string `json:"corpus_database_path"`
	CorpusManifestPath string `json:"corpus_manifest_path"`
	ModelOrder         int    `json:"model_order"`
	CacheTTLSec        int    `json:"cache_ttl_sec"`
}

// GenerationConfig holds the generation parameters applied when a request
// leaves them unset.
type GenerationConfig struct {
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	Temperature   float64 `json:"temperature"`
	EndOnSentence bool    `json:"end_on_sentence"`
}

// Config is the top-level configuration struct that aggregates all other
// configs.
type Config struct {
	Server     *ServerConfig     `json:"server_config"`
	Generation *GenerationConfig `json:"generation_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ApiAddr:            ":7399",
		LogLevel:           "info",
		DataDir:            "./data",
		// Pragmas are appended by initDB in each driver's own DSN form.
		CorpusDatabasePath: "./data/phrasemill.db",
		CorpusManifestPath: "./corpus.toml",
		ModelOrder:         2,
		CacheTTLSec:        60,
	}
}

// DefaultGenerationConfig mirrors the library's documented option
// defaults.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		MinLength:     10,
		MaxLength:     50,
		Temperature:   1.0,
		EndOnSentence: true,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Server:     DefaultServerConfig(),
		Generation: DefaultGenerationConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The server can still run with defaults, so warn instead of failing.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
