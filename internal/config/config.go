package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Remote
		Connectivity
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Remote struct {
		BaseURL string
		Timeout time.Duration
	}
	Connectivity struct {
		ProbeURL      string
		ProbeSchedule string // Cron format, "@every 30s" style intervals included
		ProbeTimeout  time.Duration
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Remote source defaults
	v.SetDefault("remote_base_url", "http://localhost:8080")
	v.SetDefault("remote_timeout", "15s")

	// Connectivity probe defaults. Empty probe URL falls back to the
	// remote health endpoint.
	v.SetDefault("connectivity_probe_url", "")
	v.SetDefault("connectivity_probe_schedule", "@every 30s")
	v.SetDefault("connectivity_probe_timeout", "5s")

	// Download queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	probeURL := v.GetString("CONNECTIVITY_PROBE_URL")
	if probeURL == "" {
		probeURL = v.GetString("REMOTE_BASE_URL") + "/health"
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Remote: Remote{
			BaseURL: v.GetString("REMOTE_BASE_URL"),
			Timeout: v.GetDuration("REMOTE_TIMEOUT"),
		},
		Connectivity: Connectivity{
			ProbeURL:      probeURL,
			ProbeSchedule: v.GetString("CONNECTIVITY_PROBE_SCHEDULE"),
			ProbeTimeout:  v.GetDuration("CONNECTIVITY_PROBE_TIMEOUT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
