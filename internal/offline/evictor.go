package offline

import "fmt"

// RemoveTextFromOffline deletes a cached text and its word payload in one
// transaction. A no-op when storage is unsupported or the id was never
// cached; never deletes one row of the pair without the other.
func (s *Service) RemoveTextFromOffline(id uint) error {
	if !s.StorageSupported() {
		return nil
	}
	if err := s.texts.DeletePair(id); err != nil {
		return fmt.Errorf("remove text %d from offline: %w", id, err)
	}
	return nil
}

// ClearAllOfflineData wipes every collection: texts, word payloads,
// languages, sync metadata and pending operations. Idempotent.
func (s *Service) ClearAllOfflineData() error {
	if !s.StorageSupported() {
		return nil
	}
	return s.db.ClearAll()
}
