package offline

import "errors"

var (
	// ErrStorageUnavailable means the runtime has no usable persistent
	// storage. Observation calls degrade silently instead of returning
	// it; only mutations surface it.
	ErrStorageUnavailable = errors.New("offline storage is not available")

	// ErrTextNotAvailableOffline is the user-actionable failure for an
	// offline read of a text that was never downloaded.
	ErrTextNotAvailableOffline = errors.New("text is not available offline: download it first while online")

	// ErrEmptyRemotePayload means the remote responded without an error
	// but with no usable payload.
	ErrEmptyRemotePayload = errors.New("failed to fetch text: remote returned no usable payload")
)
