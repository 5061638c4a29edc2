package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/offline"
	"github.com/dkazlou/lingreader/internal/tasks"
)

// RouterConfig receives all router dependencies, improving testability
// and reducing parameter count.
type RouterConfig struct {
	Database   *database.Database
	Offline    *offline.Service
	TaskClient *tasks.Client
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	offlineController := NewOfflineController(cfg.Offline, cfg.TaskClient)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		// Observation API: read-only, never fails with an error status
		// for a merely-absent entity.
		api.GET("/texts/:id/availability", offlineController.GetTextAvailability)
		api.GET("/offline/summary", offlineController.GetSummary)
		api.GET("/offline/sync", offlineController.GetLastSync)
		api.GET("/offline/texts", offlineController.GetReadableTextIDs)

		// Action API: the three entry points that mutate the cache or
		// perform policy-driven reads.
		api.GET("/texts/:id", offlineController.ReadText)
		api.POST("/texts/:id/download", offlineController.DownloadText)
		api.DELETE("/texts/:id/offline", offlineController.RemoveText)
		api.DELETE("/offline", offlineController.ClearAll)
	}

	return router
}
