package vsdb

import (
	"io"

	"go.uber.org/zap"

	"github.com/lembacon/vsdb/interchange"
	"github.com/lembacon/vsdb/value"
)

// Export writes every entry matching pattern (typically "*") to w as a
// msgpack interchange stream (SPEC_FULL.md §4.3.1). It is a read-only
// convenience built entirely on CopyValue's glob path — it does not add
// any new backend access pattern.
func (s *Store) Export(w io.Writer, pattern string) bool {
	dict, ok := s.CopyValue(pattern)
	if !ok || dict.Tag != value.TagDictionary {
		return false
	}
	entries := make([]interchange.Entry, 0, len(dict.Dict))
	for _, e := range dict.Dict {
		entries = append(entries, interchange.NewEntry(e.Key, e.Value))
	}
	if err := interchange.Write(w, entries); err != nil {
		s.log.Error("vsdb: export failed", zap.Error(err))
		return false
	}
	return true
}

// Import reads a msgpack interchange stream produced by Export (or
// assembled by hand) and writes each entry via SetValue.
func (s *Store) Import(r io.Reader) bool {
	entries, err := interchange.Read(r)
	if err != nil {
		s.log.Error("vsdb: import failed", zap.Error(err))
		return false
	}
	for _, e := range entries {
		s.SetValue(e.Key, e.Decoded(), true)
	}
	return true
}
