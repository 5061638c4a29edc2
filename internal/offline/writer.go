package offline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dkazlou/lingreader/internal/entities"
)

// ProgressFunc receives download progress checkpoints for UI feedback.
type ProgressFunc func(percent int, label string)

// DownloadTextForOffline fetches a text's full payload from the remote
// source and caches it. The text/words pair is written in one
// transaction only after the full payload is in hand, so a discarded
// caller never leaves a half-written pair. Language caching is
// best-effort: its failure is logged, never propagated.
func (s *Service) DownloadTextForOffline(ctx context.Context, id uint, onProgress ProgressFunc) error {
	if !s.StorageSupported() {
		return ErrStorageUnavailable
	}
	report := func(percent int, label string) {
		if onProgress != nil {
			onProgress(percent, label)
		}
	}

	report(0, "fetching text data")
	payload, err := s.remote.FetchTextPayload(ctx, id)
	if err != nil {
		return fmt.Errorf("download text %d: %w", id, err)
	}
	if payload.Empty() {
		return ErrEmptyRemotePayload
	}

	report(30, "fetching language data")
	if err := s.ensureLanguageCached(ctx, payload.LangID); err != nil {
		log.Printf("Language %d cache failed (continuing without it): %v", payload.LangID, err)
	}

	report(50, "preparing for storage")
	now := time.Now()
	sizeBytes := int64(len(payload.Config) + len(payload.Words))
	text := &entities.CachedText{
		ID:             id,
		LangID:         payload.LangID,
		Title:          payload.Title,
		AudioURI:       payload.AudioURI,
		SourceURI:      payload.SourceURI,
		Config:         payload.Config,
		DownloadedAt:   now,
		LastAccessedAt: now,
		SizeBytes:      sizeBytes,
	}
	words := &entities.CachedTextWords{
		TextID:   id,
		Words:    payload.Words,
		SyncedAt: now,
	}

	report(70, "writing to database")
	if err := s.texts.PutPair(text, words); err != nil {
		return fmt.Errorf("store text %d: %w", id, err)
	}

	if err := s.meta.Set(entities.SyncKeyLastTextDownload, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record download time: %w", err)
	}

	report(100, "complete")
	return nil
}

// ensureLanguageCached fetches and stores the language snapshot unless it
// is already present. Presence is checked first so a language is fetched
// at most once per id.
func (s *Service) ensureLanguageCached(ctx context.Context, langID uint) error {
	exists, err := s.langs.Exists(langID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	lang, err := s.remote.FetchLanguage(ctx, langID)
	if err != nil {
		return err
	}
	lang.ID = langID
	lang.DownloadedAt = time.Now()
	return s.langs.Put(lang)
}
