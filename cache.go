package vsdb

import "github.com/lembacon/vsdb/value"

// cacheGet/cachePut/invalidateCache back the optional decode cache
// described in SPEC_FULL.md §4.4.1. The cache only ever short-circuits
// copySingleValue; Glob and the raw Get/Set path never consult it, so
// turning it off (Options.CacheSize == 0) cannot change observable
// behavior, only performance.

func (s *Store) cacheGet(key string) (value.Value, bool) {
	if s.cache == nil {
		return value.Value{}, false
	}
	return s.cache.Get(key)
}

func (s *Store) cachePut(key string, v value.Value) {
	if s.cache == nil {
		return
	}
	s.cache.Add(key, v)
}

// invalidateCache is called under s.mu from setLocked, so it always runs
// before the write's caller can observe Set's return value — the next
// CopyValue on the same handle is guaranteed to see the fresh write, per
// spec.md §5's same-handle ordering guarantee.
func (s *Store) invalidateCache(key string) {
	if s.cache == nil {
		return
	}
	s.cache.Remove(key)
}
