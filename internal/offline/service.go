// Package offline is the offline-first policy core: it populates the
// local cache from the remote source, answers availability queries,
// evicts cached texts, and reconciles reads between network and cache.
//
// The service never talks to the remote source except through the
// injected RemoteSource, and never inspects the opaque config/words
// blobs it stores.
package offline

import (
	"context"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/database/languages"
	"github.com/dkazlou/lingreader/internal/database/syncmeta"
	"github.com/dkazlou/lingreader/internal/database/texts"
	"github.com/dkazlou/lingreader/internal/entities"
	"github.com/dkazlou/lingreader/internal/remote"
)

// RemoteSource is the opaque remote data source: one fetch per entity
// kind, any transport behind it.
type RemoteSource interface {
	FetchTextPayload(ctx context.Context, id uint) (*remote.TextPayload, error)
	FetchLanguage(ctx context.Context, id uint) (*entities.CachedLanguage, error)
}

// Service implements the offline cache subsystem over the local store,
// the remote source and the connectivity observer.
type Service struct {
	db     *database.Database
	texts  *texts.Repository
	langs  *languages.Repository
	meta   *syncmeta.Repository
	remote RemoteSource
	conn   connectivity.Observer
}

// NewService wires the offline service. db may be an unavailable store;
// every operation then degrades per its contract instead of failing.
func NewService(db *database.Database, source RemoteSource, conn connectivity.Observer) *Service {
	return &Service{
		db:     db,
		texts:  texts.NewRepository(db.DB),
		langs:  languages.NewRepository(db.DB),
		meta:   syncmeta.NewRepository(db.DB),
		remote: source,
		conn:   conn,
	}
}

// StorageSupported reports whether persistent local storage is usable.
func (s *Service) StorageSupported() bool {
	return s.db.Available()
}
