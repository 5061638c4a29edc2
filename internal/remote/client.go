// Package remote implements the client side of the two remote source
// operations the cache consumes: fetch a text's full payload by id and
// fetch a language definition by id. The server is treated as a black
// box; both responses are decoded into opaque payload blobs plus the
// metadata the cache needs for bookkeeping.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dkazlou/lingreader/internal/entities"
)

// TextPayload is the full reading unit as served by the remote source.
// Config and Words are opaque to the cache and stored byte-for-byte.
type TextPayload struct {
	ID        uint            `json:"id"`
	LangID    uint            `json:"lang_id"`
	Title     string          `json:"title"`
	AudioURI  string          `json:"audio_uri,omitempty"`
	SourceURI string          `json:"source_uri,omitempty"`
	Config    json.RawMessage `json:"config"`
	Words     json.RawMessage `json:"words"`
}

// Empty reports whether the remote returned no usable payload.
func (p *TextPayload) Empty() bool {
	return p == nil || (len(p.Words) == 0 && len(p.Config) == 0)
}

// Client fetches texts and languages from the remote source API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a remote source client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// FetchTextPayload retrieves the full payload (config + word list) for a
// text.
func (c *Client) FetchTextPayload(ctx context.Context, id uint) (*TextPayload, error) {
	url := fmt.Sprintf("%s/api/texts/%d/payload", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "LingReader/1.0 (https://github.com/dkazlou/lingreader)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch text %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("text not found: %d", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload TextPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode text payload: %w", err)
	}

	return &payload, nil
}

// FetchLanguage retrieves the language definition for a language id.
func (c *Client) FetchLanguage(ctx context.Context, id uint) (*entities.CachedLanguage, error) {
	url := fmt.Sprintf("%s/api/languages/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "LingReader/1.0 (https://github.com/dkazlou/lingreader)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch language %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("language not found: %d", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var lang entities.CachedLanguage
	if err := json.NewDecoder(resp.Body).Decode(&lang); err != nil {
		return nil, fmt.Errorf("decode language: %w", err)
	}

	return &lang, nil
}
