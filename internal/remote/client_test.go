package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTextPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/texts/42/payload", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      42,
			"lang_id": 1,
			"title":   "El Quijote",
			"config":  map[string]any{"mode": "paged"},
			"words":   []map[string]any{{"text": "hola"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	payload, err := client.FetchTextPayload(context.Background(), 42)
	require.NoError(t, err)
	assert.EqualValues(t, 42, payload.ID)
	assert.EqualValues(t, 1, payload.LangID)
	assert.Equal(t, "El Quijote", payload.Title)
	assert.JSONEq(t, `{"mode":"paged"}`, string(payload.Config))
	assert.JSONEq(t, `[{"text":"hola"}]`, string(payload.Words))
	assert.False(t, payload.Empty())
}

func TestFetchTextPayload_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.FetchTextPayload(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text not found")
}

func TestFetchTextPayload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.FetchTextPayload(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 500")
}

func TestFetchTextPayload_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.FetchTextPayload(context.Background(), 42)
	require.Error(t, err)
}

func TestFetchLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/languages/3", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            3,
			"name":          "Hebrew",
			"abbreviation":  "he",
			"right_to_left": true,
			"dict1_uri":     "https://dict.example.org/he/###",
			"text_size":     200,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	lang, err := client.FetchLanguage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Hebrew", lang.Name)
	assert.True(t, lang.RightToLeft)
	assert.Equal(t, 200, lang.TextSize)
}

func TestPayloadEmpty(t *testing.T) {
	assert.True(t, (*TextPayload)(nil).Empty())
	assert.True(t, (&TextPayload{ID: 1}).Empty())
	assert.False(t, (&TextPayload{Words: json.RawMessage(`[]`)}).Empty())
	assert.False(t, (&TextPayload{Config: json.RawMessage(`{}`)}).Empty())
}
