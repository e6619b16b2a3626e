package config

import "time"

// WorkerConfig defines configuration for the bounded diff worker pool.
type WorkerConfig struct {
	// Maximum page pairs diffed in parallel.
	MaxConcurrentComparisons int `json:"max_concurrent_comparisons" yaml:"max_concurrent_comparisons" validate:"min=1,max=256"`
	// Retries for a transiently failing pair unit before it is degraded to
	// "unavailable".
	RetryCount int `json:"retry_count" yaml:"retry_count" validate:"min=0,max=10"`
	// Fixed delay between retries, in milliseconds.
	RetryDelayMs int `json:"retry_delay_ms" yaml:"retry_delay_ms" validate:"min=0,max=60000"`
}

// RetryDelay returns the configured retry delay as a duration.
func (wc WorkerConfig) RetryDelay() time.Duration {
	return time.Duration(wc.RetryDelayMs) * time.Millisecond
}

// NewDefaultWorkerConfig creates default worker pool configuration
func NewDefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxConcurrentComparisons: 4,
		RetryCount:               2,
		RetryDelayMs:             200,
	}
}

// CacheConfig defines configuration for the fingerprint and pair-result cache.
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Maximum entries held per cache before LRU eviction.
	MaxEntries int `json:"max_entries,omitempty" yaml:"max_entries,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultCacheConfig creates default cache configuration
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:    true,
		MaxEntries: 1024,
	}
}
