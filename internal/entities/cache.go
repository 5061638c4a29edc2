package entities

import (
	"encoding/json"
	"time"
)

// CachedText is one cached reading unit. A CachedText row exists iff a
// CachedTextWords row with the same id exists; the pair is written and
// deleted together inside one transaction.
type CachedText struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	LangID         uint            `gorm:"index" json:"lang_id"`
	Title          string          `gorm:"size:512" json:"title"`
	AudioURI       string          `gorm:"size:2048" json:"audio_uri,omitempty"`
	SourceURI      string          `gorm:"size:2048" json:"source_uri,omitempty"`
	Config         json.RawMessage `gorm:"type:text" json:"config"` // reading-configuration snapshot, opaque
	DownloadedAt   time.Time       `json:"downloaded_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	SizeBytes      int64           `json:"size_bytes"`
}

// CachedTextWords is the word/annotation payload for one text. Opaque to
// this subsystem; only ever read or written as a pair with its CachedText.
type CachedTextWords struct {
	TextID   uint            `gorm:"primaryKey" json:"text_id"`
	Words    json.RawMessage `gorm:"type:text" json:"words"`
	SyncedAt time.Time       `json:"synced_at"`
}

// CachedLanguage is a denormalized snapshot of the language settings needed
// to render any of its texts offline. Fetched at most once per id; shared
// by all cached texts in that language; removed only by a full clear.
type CachedLanguage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100" json:"name"`
	Abbreviation  string    `gorm:"size:20" json:"abbreviation,omitempty"`
	RightToLeft   bool      `json:"right_to_left"`
	RemoveSpaces  bool      `json:"remove_spaces"`
	Dict1URI      string    `gorm:"size:2048" json:"dict1_uri,omitempty"`
	Dict2URI      string    `gorm:"size:2048" json:"dict2_uri,omitempty"`
	TranslatorURI string    `gorm:"size:2048" json:"translator_uri,omitempty"`
	TextSize      int       `json:"text_size,omitempty"`
	DownloadedAt  time.Time `json:"downloaded_at"`
}

// SyncMeta is a generic key/value row for cross-cutting sync bookkeeping.
type SyncMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PendingOperation is a queued offline mutation reserved for future
// write-back. The read path neither produces nor drains entries; the
// schema keeps them representable for forward compatibility.
type PendingOperation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Type      string          `gorm:"size:50" json:"type"`
	EntityID  uint            `gorm:"index" json:"entity_id"`
	Data      json.RawMessage `gorm:"type:text" json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Retries   int             `json:"retries"`
}

func (CachedText) TableName() string {
	return "cached_texts"
}

func (CachedTextWords) TableName() string {
	return "cached_text_words"
}

func (CachedLanguage) TableName() string {
	return "cached_languages"
}

func (SyncMeta) TableName() string {
	return "sync_meta"
}

func (PendingOperation) TableName() string {
	return "pending_operations"
}

// Known sync metadata keys
const (
	SyncKeySchemaVersion    = "schema_version"
	SyncKeyLastTextDownload = "last_text_download"
)
