package vsdb

import (
	"time"

	"go.uber.org/zap"

	"github.com/lembacon/vsdb/internal/backend"
)

// Glob implements spec.md §4.2.1: pattern is either the single byte "*"
// (enumerate everything), a prefix P followed by "*" (enumerate entries
// whose key begins with P), or anything else, which is a failure. On
// success the two returned slices are parallel and in key-ascending
// order; an empty result is success with nil slices, not a failure.
func (s *Store) Glob(pattern []byte) (keys [][]byte, values [][]byte, ok bool) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, values, ok = s.globLocked(pattern)
	s.metrics.Observe("glob", started, ok)
	if ok {
		s.metrics.ObserveGlobSize(len(keys))
	}
	return keys, values, ok
}

func (s *Store) globLocked(pattern []byte) ([][]byte, [][]byte, bool) {
	if s.bk == nil {
		return nil, nil, false
	}

	var prefix []byte
	switch {
	case len(pattern) == 1 && pattern[0] == '*':
		prefix = nil
	case len(pattern) >= 2 && pattern[len(pattern)-1] == '*':
		prefix = pattern[:len(pattern)-1]
	default:
		s.log.Warn("vsdb: malformed glob pattern", zap.ByteString("pattern", pattern))
		return nil, nil, false
	}

	var keys, values [][]byte
	err := s.bk.Range(prefix, func(e backend.Entry) bool {
		if prefix != nil && !backend.HasPrefix(e.Key, prefix) {
			return false
		}
		keys = append(keys, e.Key)
		values = append(values, e.Value)
		return true
	})
	if err != nil {
		s.log.Error("vsdb: glob failed", zap.Error(err))
		return nil, nil, false
	}
	return keys, values, true
}
