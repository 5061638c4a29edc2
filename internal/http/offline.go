package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkazlou/lingreader/internal/offline"
	"github.com/dkazlou/lingreader/internal/tasks"
)

// OfflineController exposes the offline cache observation and action API.
type OfflineController struct {
	svc        *offline.Service
	taskClient *tasks.Client
}

func NewOfflineController(svc *offline.Service, taskClient *tasks.Client) *OfflineController {
	return &OfflineController{
		svc:        svc,
		taskClient: taskClient,
	}
}

// progressStep is one reported checkpoint of a synchronous download.
type progressStep struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

func parseTextID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid text id"})
		return 0, false
	}
	return uint(id), true
}

// GetTextAvailability reports whether a text is cached, with its size
// and download time. Absence is a 200 with available=false, not a 404.
func (controller *OfflineController) GetTextAvailability(c *gin.Context) {
	id, ok := parseTextID(c)
	if !ok {
		return
	}
	c.IndentedJSON(http.StatusOK, controller.svc.IsTextAvailableOffline(id))
}

// GetSummary aggregates the cached texts by language.
func (controller *OfflineController) GetSummary(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, controller.svc.OfflineSummary())
}

// GetLastSync returns the last successful download time.
func (controller *OfflineController) GetLastSync(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"last_sync": controller.svc.LastSyncTime()})
}

// GetReadableTextIDs enumerates ids readable offline right now.
func (controller *OfflineController) GetReadableTextIDs(c *gin.Context) {
	ids := controller.svc.ReadableOfflineTextIDs()
	if ids == nil {
		ids = []uint{}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"text_ids": ids, "count": len(ids)})
}

// ReadText performs the offline-first read and reports provenance so the
// caller can show a "showing cached version" notice.
func (controller *OfflineController) ReadText(c *gin.Context) {
	id, ok := parseTextID(c)
	if !ok {
		return
	}

	result, err := controller.svc.GetTextWordsOfflineFirst(c.Request.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, offline.ErrTextNotAvailableOffline) {
			status = http.StatusNotFound
		}
		c.IndentedJSON(status, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

// DownloadText caches a text for offline reading. With background=true
// the download is queued instead and processed by the task workers.
func (controller *OfflineController) DownloadText(c *gin.Context) {
	id, ok := parseTextID(c)
	if !ok {
		return
	}

	if c.Query("background") == "true" {
		if controller.taskClient == nil {
			c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "background downloads are disabled"})
			return
		}
		ids, err := controller.taskClient.Add(tasks.DownloadTextTask{TextID: id}).Save()
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusAccepted, gin.H{"queued": true, "text_id": id, "task_ids": ids})
		return
	}

	var steps []progressStep
	err := controller.svc.DownloadTextForOffline(c.Request.Context(), id, func(percent int, label string) {
		steps = append(steps, progressStep{Percent: percent, Label: label})
	})
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, offline.ErrStorageUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.IndentedJSON(status, gin.H{"error": err.Error(), "progress": steps})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"text_id":  id,
		"message":  "text cached for offline reading",
		"progress": steps,
	})
}

// RemoveText evicts one cached text. Idempotent.
func (controller *OfflineController) RemoveText(c *gin.Context) {
	id, ok := parseTextID(c)
	if !ok {
		return
	}

	if err := controller.svc.RemoveTextFromOffline(id); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"text_id": id, "removed": true})
}

// ClearAll forgets everything: all five offline collections.
func (controller *OfflineController) ClearAll(c *gin.Context) {
	if err := controller.svc.ClearAllOfflineData(); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"cleared": true})
}
