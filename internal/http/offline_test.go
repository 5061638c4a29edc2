package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/entities"
	"github.com/dkazlou/lingreader/internal/offline"
	"github.com/dkazlou/lingreader/internal/remote"
)

type stubRemote struct {
	payloads map[uint]*remote.TextPayload
}

func (s *stubRemote) FetchTextPayload(ctx context.Context, id uint) (*remote.TextPayload, error) {
	payload, ok := s.payloads[id]
	if !ok {
		return nil, fmt.Errorf("text not found: %d", id)
	}
	return payload, nil
}

func (s *stubRemote) FetchLanguage(ctx context.Context, id uint) (*entities.CachedLanguage, error) {
	return &entities.CachedLanguage{Name: fmt.Sprintf("Lang %d", id)}, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *stubRemote) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	source := &stubRemote{payloads: make(map[uint]*remote.TextPayload)}
	svc := offline.NewService(db, source, connectivity.Static(true))

	router := NewRouter(RouterConfig{
		Database: db,
		Offline:  svc,
		Version:  "test",
	})
	return router, source
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Checks["offline_store"])
}

func TestDownloadAndAvailability(t *testing.T) {
	router, source := setupRouter(t)
	source.payloads[42] = &remote.TextPayload{
		ID:     42,
		LangID: 1,
		Title:  "El Quijote",
		Words:  json.RawMessage(`[{"text":"hola"}]`),
	}

	// Not cached yet: 200 with available=false, never a 404.
	w := perform(router, http.MethodGet, "/api/texts/42/availability")
	assert.Equal(t, http.StatusOK, w.Code)
	var avail offline.TextAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.False(t, avail.Available)

	w = perform(router, http.MethodPost, "/api/texts/42/download")
	require.Equal(t, http.StatusOK, w.Code)
	var downloadResp struct {
		Progress []progressStep `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &downloadResp))
	require.NotEmpty(t, downloadResp.Progress)
	assert.Equal(t, 0, downloadResp.Progress[0].Percent)
	assert.Equal(t, 100, downloadResp.Progress[len(downloadResp.Progress)-1].Percent)

	w = perform(router, http.MethodGet, "/api/texts/42/availability")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.True(t, avail.Available)
}

func TestDownload_RemoteFailure(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodPost, "/api/texts/9/download")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDownload_InvalidID(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodPost, "/api/texts/abc/download")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownload_BackgroundWithoutQueue(t *testing.T) {
	router, source := setupRouter(t)
	source.payloads[42] = &remote.TextPayload{ID: 42, Words: json.RawMessage(`[]`)}

	w := perform(router, http.MethodPost, "/api/texts/42/download?background=true")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReadText_ReportsProvenance(t *testing.T) {
	router, source := setupRouter(t)
	source.payloads[42] = &remote.TextPayload{
		ID:     42,
		LangID: 1,
		Words:  json.RawMessage(`[{"text":"hola"}]`),
	}

	w := perform(router, http.MethodGet, "/api/texts/42")
	require.Equal(t, http.StatusOK, w.Code)

	var result offline.TextReadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, offline.SourceNetwork, result.Source)
	assert.JSONEq(t, `[{"text":"hola"}]`, string(result.Data.Words))
}

func TestSummaryAndRemove(t *testing.T) {
	router, source := setupRouter(t)
	source.payloads[1] = &remote.TextPayload{ID: 1, LangID: 1, Words: json.RawMessage(`["a"]`)}
	source.payloads[2] = &remote.TextPayload{ID: 2, LangID: 1, Words: json.RawMessage(`["b"]`)}

	perform(router, http.MethodPost, "/api/texts/1/download")
	perform(router, http.MethodPost, "/api/texts/2/download")

	w := perform(router, http.MethodGet, "/api/offline/summary")
	require.Equal(t, http.StatusOK, w.Code)
	var summary offline.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalTexts)

	w = perform(router, http.MethodDelete, "/api/texts/1/offline")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/api/offline/texts")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		TextIDs []uint `json:"text_ids"`
		Count   int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, []uint{2}, listing.TextIDs)

	w = perform(router, http.MethodDelete, "/api/offline")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/api/offline/summary")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Zero(t, summary.TotalTexts)
}

func TestLastSync(t *testing.T) {
	router, source := setupRouter(t)

	w := perform(router, http.MethodGet, "/api/offline/sync")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		LastSync *string `json:"last_sync"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.LastSync)

	source.payloads[1] = &remote.TextPayload{ID: 1, LangID: 1, Words: json.RawMessage(`["a"]`)}
	perform(router, http.MethodPost, "/api/texts/1/download")

	w = perform(router, http.MethodGet, "/api/offline/sync")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.LastSync)
}
