package vsdb

import (
	"strings"
	"time"

	"github.com/lembacon/vsdb/value"
)

// CopyValue implements the typed façade of spec.md §4.4: a key
// containing "*" is routed to a glob read that aggregates every matching
// entry into a Dictionary; any other key is a plain decode of a single
// entry. A nil *Store or a key the backend has nothing for returns
// (Value{}, false).
func (s *Store) CopyValue(key string) (value.Value, bool) {
	if s == nil {
		return value.Value{}, false
	}
	if strings.Contains(key, "*") {
		return s.copyGlobValue(key)
	}
	return s.copySingleValue(key)
}

// copySingleValue holds s.mu across the cache lookup, the backend read and
// the cache fill, so a concurrent Set cannot land between the read and
// cachePut and leave a stale value in the cache.
func (s *Store) copySingleValue(key string) (value.Value, bool) {
	started := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cacheGet(key); ok {
		return cached, true
	}
	raw, ok := s.getLocked([]byte(key))
	s.metrics.Observe("get", started, ok)
	if !ok {
		return value.Value{}, false
	}
	v := value.Decode(raw)
	s.cachePut(key, v)
	return v, true
}

func (s *Store) copyGlobValue(pattern string) (value.Value, bool) {
	keys, values, ok := s.Glob([]byte(pattern))
	if !ok {
		return value.Value{}, false
	}
	entries := make([]value.DictEntry, 0, len(keys))
	for i, k := range keys {
		entries = append(entries, value.DictEntry{
			Key:   string(k),
			Value: value.Decode(values[i]),
		})
	}
	return value.Dictionary(entries...), true
}

// SetValue implements spec.md §4.4's write path: present=false encodes
// to a deletion, present=true encodes v and writes it. A nil *Store or
// an empty key is a no-op (not a failure — there is nothing to report to
// since there is no return value, matching the reference's void
// vsdb_set_cfvalue).
func (s *Store) SetValue(key string, v value.Value, present bool) {
	if s == nil || key == "" {
		return
	}
	if !present {
		s.Set([]byte(key), nil, false)
		return
	}
	s.Set([]byte(key), value.Encode(v), true)
}
