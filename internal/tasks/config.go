package tasks

import "time"

// Config holds configuration for the background download queue.
type Config struct {
	// Workers is the number of concurrent download workers. Default: 2
	Workers int

	// MaxRetries is the maximum attempts for a failed download. Default: 3
	MaxRetries int

	// RetryDelay is the backoff duration between retries. Default: 1m
	RetryDelay time.Duration

	// TaskTimeout bounds a single download attempt. Default: 5m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are cleaned up. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks are kept. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}
