package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkazlou/lingreader/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// The offline store being unavailable degrades features but does not
	// make the service unhealthy; surface it as a check instead.
	if h.db.Available() {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["offline_store"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["offline_store"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["offline_store"] = "ok"
		}
	} else {
		checks["offline_store"] = "unavailable"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
