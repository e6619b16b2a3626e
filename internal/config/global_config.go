package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdiff/docdiff/internal/common/errorwrapper"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the engine
type GlobalConfig struct {
	CompareConfig CompareConfig `json:"compare_config,omitempty" yaml:"compare_config,omitempty"`
	WorkerConfig  WorkerConfig  `json:"worker_config,omitempty" yaml:"worker_config,omitempty"`
	CacheConfig   CacheConfig   `json:"cache_config,omitempty" yaml:"cache_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CompareConfig: NewDefaultCompareConfig(),
		WorkerConfig:  NewDefaultWorkerConfig(),
		CacheConfig:   NewDefaultCacheConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file. YAML is preferred if
// the file extension is .yaml or .yml, JSON otherwise. An empty path yields
// the defaults. The loaded configuration is not validated here; callers run
// ValidateConfig before starting any work.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(providedPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	ext := strings.ToLower(filepath.Ext(providedPath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse YAML config")
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse JSON config")
		}
	default:
		// Try YAML first, then JSON.
		if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return nil, errorwrapper.WrapError(yamlErr, "failed to parse config file as YAML or JSON")
			}
		}
	}

	return cfg, nil
}
