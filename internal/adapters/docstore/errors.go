package docstore

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrNotInitialized marks a document whose backing file does not
	// exist yet. First runs hit this on every document; callers proceed
	// with the typed zero document.
	ErrNotInitialized = errors.New("document not initialized")

	// ErrCorrupt marks a document whose backing file exists but does not
	// parse. Distinguished from ErrNotInitialized so data loss is never
	// silently indistinguishable from a fresh install.
	ErrCorrupt = errors.New("document corrupt")

	// ErrLockTimeout marks a lock acquisition that exhausted its bounded
	// wait, typically because a crashed process left a lock behind.
	ErrLockTimeout = errors.New("document lock timeout")

	// ErrNoChange can be returned by an Update mutate callback to release
	// the lock without writing the document back.
	ErrNoChange = errors.New("no change")
)
