package vsdb

import (
	"time"

	"go.uber.org/zap"
)

// Get performs a point lookup of a raw key, per spec.md §4.2: an empty
// key is a failure, and a successful return with a zero-length payload
// means the stored value was itself empty (not the same as "not found").
func (s *Store) Get(key []byte) ([]byte, bool) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.getLocked(key)
	s.metrics.Observe("get", started, ok)
	return val, ok
}

func (s *Store) getLocked(key []byte) ([]byte, bool) {
	if s.bk == nil || len(key) == 0 {
		return nil, false
	}
	val, found, err := s.bk.Get(key)
	if err != nil {
		s.log.Error("vsdb: get failed", zap.ByteString("key", key), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return val, true
}
