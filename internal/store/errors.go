package store

import "errors"

var (
	// ErrStoreUnavailable is returned when the article store cannot be
	// reached or answers with a non-success status.
	ErrStoreUnavailable = errors.New("article store is unavailable")

	// ErrStoreRejected is returned when the store's validation rejects a
	// draft (e.g. missing required fields).
	ErrStoreRejected = errors.New("article store rejected the draft")
)
