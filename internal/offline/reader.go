package offline

import (
	"context"
	"log"
	"time"

	"github.com/dkazlou/lingreader/internal/remote"
)

// Source tags the provenance of returned text data.
type Source string

const (
	SourceNetwork Source = "network"
	SourceOffline Source = "offline"
)

// TextReadResult is the outcome of an offline-first read.
type TextReadResult struct {
	Data             *remote.TextPayload `json:"data"`
	Source           Source              `json:"source"`
	OfflineAvailable bool                `json:"offline_available"`
}

// GetTextWordsOfflineFirst reads a text's payload, preferring the network
// and degrading to the cache.
//
// The connectivity branch is chosen once at call start. Online: fetch,
// and on failure fall back silently to the cache when present, otherwise
// propagate the original failure. Offline: skip the network entirely and
// read the cache, failing with ErrTextNotAvailableOffline when the text
// was never downloaded. A successful cache read updates last_accessed_at.
func (s *Service) GetTextWordsOfflineFirst(ctx context.Context, id uint) (*TextReadResult, error) {
	if s.conn.Online() {
		payload, err := s.remote.FetchTextPayload(ctx, id)
		if err == nil && !payload.Empty() {
			return &TextReadResult{
				Data:             payload,
				Source:           SourceNetwork,
				OfflineAvailable: s.IsTextAvailableOffline(id).Available,
			}, nil
		}

		if cached := s.readCached(id); cached != nil {
			log.Printf("Network fetch for text %d failed, serving cached copy: %v", id, err)
			return &TextReadResult{
				Data:             cached,
				Source:           SourceOffline,
				OfflineAvailable: true,
			}, nil
		}

		if err != nil {
			return nil, err
		}
		return nil, ErrEmptyRemotePayload
	}

	if cached := s.readCached(id); cached != nil {
		return &TextReadResult{
			Data:             cached,
			Source:           SourceOffline,
			OfflineAvailable: true,
		}, nil
	}
	return nil, ErrTextNotAvailableOffline
}

// CanReadText reports whether a read of the text would currently
// succeed. True immediately when online; offline, true iff the text is
// cached and storage is supported. Never performs a network call.
func (s *Service) CanReadText(id uint) bool {
	if s.conn.Online() {
		return true
	}
	return s.IsTextAvailableOffline(id).Available
}

// ReadableOfflineTextIDs enumerates the ids for which an offline read
// would currently succeed.
func (s *Service) ReadableOfflineTextIDs() []uint {
	return s.OfflineTextIDs()
}

// readCached returns the cached pair reassembled into a payload, or nil
// when storage is unsupported, the pair is absent, or a concurrent
// eviction raced the read. Updates last_accessed_at on success.
func (s *Service) readCached(id uint) *remote.TextPayload {
	if !s.StorageSupported() {
		return nil
	}
	text, words, err := s.texts.GetPair(id)
	if err != nil {
		return nil
	}
	if err := s.texts.Touch(id, time.Now()); err != nil {
		log.Printf("Failed to update last access time for text %d: %v", id, err)
	}
	return &remote.TextPayload{
		ID:        text.ID,
		LangID:    text.LangID,
		Title:     text.Title,
		AudioURI:  text.AudioURI,
		SourceURI: text.SourceURI,
		Config:    text.Config,
		Words:     words.Words,
	}
}
