package vsdb

import (
	"time"

	"go.uber.org/zap"
)

// Set inserts, overwrites, or deletes a raw key, per spec.md §4.2: an
// empty key is a failure. present selects insert/overwrite (true) or
// delete (false); deleting an absent key is treated as success, per
// spec.md §4.2's "write intent of absent is satisfied" rule.
func (s *Store) Set(key []byte, val []byte, present bool) bool {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.setLocked(key, val, present)
	s.metrics.Observe("set", started, ok)
	return ok
}

func (s *Store) setLocked(key []byte, val []byte, present bool) bool {
	if s.bk == nil || len(key) == 0 {
		return false
	}
	var err error
	if present {
		err = s.bk.Put(key, val)
	} else {
		err = s.bk.Delete(key)
	}
	if err != nil {
		s.log.Error("vsdb: set failed", zap.ByteString("key", key), zap.Bool("present", present), zap.Error(err))
		return false
	}
	s.invalidateCache(string(key))
	return true
}
