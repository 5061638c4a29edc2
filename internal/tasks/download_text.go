package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/dkazlou/lingreader/internal/offline"
)

// DownloadTextTask caches a single text for offline reading in the
// background.
type DownloadTextTask struct {
	TextID uint `json:"text_id"`
}

// Config returns the queue configuration for background downloads.
func (t DownloadTextTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "download_text",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DownloadTextProcessor creates a processor function for DownloadTextTask.
func DownloadTextProcessor(svc *offline.Service) backlite.QueueProcessor[DownloadTextTask] {
	return func(ctx context.Context, task DownloadTextTask) error {
		if svc == nil {
			return fmt.Errorf("offline service not configured")
		}

		err := svc.DownloadTextForOffline(ctx, task.TextID, nil)
		if err != nil {
			return fmt.Errorf("download text %d: %w", task.TextID, err)
		}

		log.Printf("[TASK] Cached text %d for offline reading", task.TextID)
		return nil
	}
}

// NewDownloadTextQueue creates a backlite queue for background downloads.
func NewDownloadTextQueue(svc *offline.Service) backlite.Queue {
	return backlite.NewQueue(DownloadTextProcessor(svc))
}
