// Package vsdb implements the embedded, single-process key-value store
// described by the spec: a thread-safe wrapper over an ordered
// byte-keyed map (internal/backend), a typed value codec (value), and a
// typed façade mapping structured keys — including glob keys — to
// decoded value trees.
//
// Every public operation returns a coarse ok/failed result rather than a
// Go error, by design (spec.md §4.2.3 and §7): the store is embedded and
// callers are expected to recover uniformly from absence, a malformed
// argument, or a backend fault, without distinguishing them.
package vsdb

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/lembacon/vsdb/internal/backend"
	"github.com/lembacon/vsdb/metrics"
	"github.com/lembacon/vsdb/value"
)

// Options configures Open. The zero value is a usable default: no
// logging, no decode cache.
type Options struct {
	// Logger receives structured diagnostics (open/close/sync failures,
	// malformed glob patterns). Defaults to a no-op logger.
	Logger *zap.Logger

	// CacheSize bounds an optional LRU of decoded single-key reads (see
	// facade.go). Zero disables the cache entirely.
	CacheSize int
}

// Store is a handle to an open vsdb file. It owns the backend, a mutex
// serializing every operation on the handle, and the filesystem path.
// Handles are not clonable: share one *Store across goroutines, exactly
// as spec.md §3.3 requires, and rely on the internal locking.
type Store struct {
	mu   sync.Mutex
	id   uuid.UUID
	path string
	bk   *backend.Backend

	log     *zap.Logger
	metrics *metrics.Collector
	cache   *lru.Cache[string, value.Value]
}

// Open opens or creates the store file at path. An empty path is a
// failure, matching spec.md §4.2's "non-null path; empty path is a
// failure" rule.
func Open(path string, opt Options) (*Store, bool) {
	if path == "" {
		return nil, false
	}
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bk, err := backend.Open(path)
	if err != nil {
		logger.Error("vsdb: open failed", zap.String("path", path), zap.Error(err))
		return nil, false
	}

	id := uuid.New()
	s := &Store{
		id:      id,
		path:    path,
		bk:      bk,
		log:     logger.With(zap.String("store", id.String())),
		metrics: metrics.NewCollector(path),
	}
	if opt.CacheSize > 0 {
		cache, err := lru.New[string, value.Value](opt.CacheSize)
		if err != nil {
			// Only invalid (non-positive) sizes return an error, and we
			// already guarded against that; treat it as "no cache" rather
			// than failing the whole open.
			s.log.Warn("vsdb: decode cache disabled", zap.Error(err))
		} else {
			s.cache = cache
		}
	}
	s.log.Info("vsdb: opened", zap.String("path", path))
	return s, true
}

// Close is idempotent on a nil *Store and releases the backend and the
// decode cache.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bk == nil {
		return
	}
	if err := s.bk.Close(); err != nil {
		s.log.Error("vsdb: close failed", zap.Error(err))
	} else {
		s.log.Info("vsdb: closed")
	}
	s.bk = nil
	s.metrics.Unregister()
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Sync forces durability of all buffered writes.
func (s *Store) Sync() bool {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.syncLocked()
	s.metrics.Observe("sync", started, ok)
	return ok
}

func (s *Store) syncLocked() bool {
	if s.bk == nil {
		return false
	}
	if err := s.bk.Sync(); err != nil {
		s.log.Error("vsdb: sync failed", zap.Error(err))
		return false
	}
	return true
}
