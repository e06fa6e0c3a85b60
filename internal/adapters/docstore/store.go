// Package docstore implements the file-backed document store every
// warchest component persists through. One JSON document per key, one
// lock file per document, safe against concurrent short-lived agent
// processes on the same host.
//
// Locking discipline: readers take a shared flock for the duration of
// the read; writers take an exclusive flock. Mutating callers must go
// through Update, which holds ONE exclusive lock across the whole
// load-mutate-save sequence — two separate acquisitions would let a
// concurrent writer land in between and lose an update.
//
// Saves go through a temp file and an atomic rename, so a crash
// mid-write can never leave a truncated document. Locks therefore live
// on a sidecar <key>.lock file whose inode survives the rename.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"

	"github.com/okian/warchest/pkg/logger"
	"github.com/okian/warchest/pkg/metrics"
)

// Default lock bounds. A healthy writer holds a lock for one read plus
// one write of a small JSON file, so five seconds of waiting means a
// crashed or wedged peer.
const (
	defaultLockTimeout = 5 * time.Second
	defaultLockRetry   = 25 * time.Millisecond

	filePermission = 0o644
	dirPermission  = 0o755
)

// Store provides locked load/save/update of JSON documents in a
// directory. The zero value is not usable; use New.
type Store struct {
	dir         string
	lockTimeout time.Duration
	lockRetry   time.Duration
	log         logger.Logger
}

// New creates a Store rooted at dir. The directory is created on first
// save if it does not exist.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:         dir,
		lockTimeout: defaultLockTimeout,
		lockRetry:   defaultLockRetry,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	return s
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) lockPath(key string) string {
	return filepath.Join(s.dir, key+".lock")
}

// acquire takes a lock on key's sidecar lock file, shared or exclusive,
// with a bounded wait. The caller must Unlock the returned flock.
func (s *Store) acquire(ctx context.Context, key string, exclusive bool) (*flock.Flock, error) {
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return nil, fmt.Errorf("create state directory %q: %w", s.dir, err)
	}

	fl := flock.New(s.lockPath(key))

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	start := time.Now()
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLockContext(lockCtx, s.lockRetry)
	} else {
		ok, err = fl.TryRLockContext(lockCtx, s.lockRetry)
	}
	metrics.RecordLockWait(time.Since(start).Seconds())

	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("lock document %q: %w", key, err)
	}
	if err != nil || !ok {
		metrics.RecordLockTimeout()
		return nil, fmt.Errorf("acquire lock on document %q after %s: %w", key, s.lockTimeout, ErrLockTimeout)
	}
	return fl, nil
}

// Load reads the document for key into v under a shared lock.
//
// An absent backing file yields ErrNotInitialized and an unparsable one
// yields ErrCorrupt; in both cases v is left untouched so callers can
// continue with the typed zero document. Any other error is a real
// lock or IO failure.
func (s *Store) Load(ctx context.Context, key string, v any) error {
	fl, err := s.acquire(ctx, key, false)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	return s.read(key, v)
}

// read loads and decodes the document. Callers hold the lock.
func (s *Store) read(key string, v any) error {
	metrics.RecordDocumentLoad(key)

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("document %q: %w", key, ErrNotInitialized)
	}
	if err != nil {
		return fmt.Errorf("read document %q: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		metrics.RecordCorruptDocument(key)
		return fmt.Errorf("document %q: %w: %v", key, ErrCorrupt, err)
	}
	return nil
}

// LoadOrDefault is Load with the degrade-to-empty policy applied: an
// absent document is silently treated as the zero value, a corrupt one
// is logged and counted before being treated the same way. Only lock
// and IO failures are returned.
func (s *Store) LoadOrDefault(ctx context.Context, key string, v any) error {
	err := s.Load(ctx, key, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotInitialized):
		s.log.Debug(ctx, "document not initialized, using defaults", logger.String("document", key))
		return nil
	case errors.Is(err, ErrCorrupt):
		s.log.Warn(ctx, "document corrupt, degrading to defaults", logger.String("document", key), logger.Error(err))
		return nil
	default:
		return err
	}
}

// Save writes v as the document for key under an exclusive lock, via a
// temp file and an atomic rename.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	fl, err := s.acquire(ctx, key, true)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	return s.write(key, v)
}

// write encodes and atomically persists the document. Callers hold the
// exclusive lock.
func (s *Store) write(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(s.path(key), data, filePermission); err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	metrics.RecordDocumentSave(key)
	return nil
}

// Update runs a read-modify-write transaction on key's document under
// one exclusive lock. The document is loaded into v (degrade-to-empty
// on absence or corruption, as LoadOrDefault), mutate runs against it,
// and the result is written back before the lock is released.
//
// A mutate returning ErrNoChange releases the lock without writing.
// Any other mutate error aborts the save and is returned as-is.
func (s *Store) Update(ctx context.Context, key string, v any, mutate func() error) error {
	fl, err := s.acquire(ctx, key, true)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	switch err := s.read(key, v); {
	case err == nil:
	case errors.Is(err, ErrNotInitialized):
		s.log.Debug(ctx, "document not initialized, starting empty", logger.String("document", key))
	case errors.Is(err, ErrCorrupt):
		s.log.Warn(ctx, "document corrupt, rewriting from defaults", logger.String("document", key), logger.Error(err))
	default:
		return err
	}

	if err := mutate(); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}

	return s.write(key, v)
}
