package offline

import (
	"fmt"
	"sort"
	"time"
)

// TextAvailability answers "is this text present and how large/old is it".
type TextAvailability struct {
	Available    bool       `json:"available"`
	DownloadedAt *time.Time `json:"downloaded_at,omitempty"`
	SizeBytes    int64      `json:"size_bytes,omitempty"`
}

// LanguageSummary aggregates the cached texts of one language.
type LanguageSummary struct {
	LangID    uint   `json:"lang_id"`
	LangName  string `json:"lang_name"`
	TextCount int    `json:"text_count"`
	SizeBytes int64  `json:"size_bytes"`
}

// Summary describes everything currently readable offline.
type Summary struct {
	TotalTexts     int               `json:"total_texts"`
	TotalSizeBytes int64             `json:"total_size_bytes"`
	ByLanguage     []LanguageSummary `json:"by_language"`
}

// IsTextAvailableOffline reports whether a text is cached. Absence and
// storage errors both yield {Available: false}; observation calls never
// fail. Does not touch last_accessed_at.
func (s *Service) IsTextAvailableOffline(id uint) TextAvailability {
	if !s.StorageSupported() {
		return TextAvailability{}
	}
	text, err := s.texts.GetText(id)
	if err != nil {
		return TextAvailability{}
	}
	downloadedAt := text.DownloadedAt
	return TextAvailability{
		Available:    true,
		DownloadedAt: &downloadedAt,
		SizeBytes:    text.SizeBytes,
	}
}

// OfflineTextIDs enumerates the ids of all cached texts as a snapshot.
func (s *Service) OfflineTextIDs() []uint {
	if !s.StorageSupported() {
		return nil
	}
	ids, err := s.texts.IDs()
	if err != nil {
		return nil
	}
	return ids
}

// OfflineSummary aggregates over all cached texts, grouping by language.
// A text whose language row was never cached still contributes, under a
// synthesized "Language {id}" name; cached texts are never hidden from
// the summary.
func (s *Service) OfflineSummary() Summary {
	summary := Summary{ByLanguage: []LanguageSummary{}}
	if !s.StorageSupported() {
		return summary
	}

	cached, err := s.texts.List()
	if err != nil {
		return summary
	}

	names := make(map[uint]string)
	if langs, err := s.langs.List(); err == nil {
		for _, lang := range langs {
			names[lang.ID] = lang.Name
		}
	}

	byLang := make(map[uint]*LanguageSummary)
	for _, text := range cached {
		summary.TotalTexts++
		summary.TotalSizeBytes += text.SizeBytes

		group, ok := byLang[text.LangID]
		if !ok {
			name, resolved := names[text.LangID]
			if !resolved {
				name = fmt.Sprintf("Language %d", text.LangID)
			}
			group = &LanguageSummary{LangID: text.LangID, LangName: name}
			byLang[text.LangID] = group
		}
		group.TextCount++
		group.SizeBytes += text.SizeBytes
	}

	for _, group := range byLang {
		summary.ByLanguage = append(summary.ByLanguage, *group)
	}
	sort.Slice(summary.ByLanguage, func(i, j int) bool {
		return summary.ByLanguage[i].LangID < summary.ByLanguage[j].LangID
	})

	return summary
}

// LastSyncTime returns the time of the last successful download, or nil
// when nothing was ever downloaded (or storage is unsupported).
func (s *Service) LastSyncTime() *time.Time {
	if !s.StorageSupported() {
		return nil
	}
	t, err := s.meta.LastSyncTime()
	if err != nil {
		return nil
	}
	return t
}

// GetMetadata reads an arbitrary sync bookkeeping value. The empty
// string means the key is unset.
func (s *Service) GetMetadata(key string) string {
	if !s.StorageSupported() {
		return ""
	}
	meta, err := s.meta.Get(key)
	if err != nil {
		return ""
	}
	return meta.Value
}

// SetMetadata upserts an arbitrary sync bookkeeping value.
func (s *Service) SetMetadata(key, value string) error {
	if !s.StorageSupported() {
		return ErrStorageUnavailable
	}
	return s.meta.Set(key, value)
}
