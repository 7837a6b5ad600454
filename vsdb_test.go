package vsdb

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lembacon/vsdb/value"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, ok := Open(filepath.Join(t.TempDir(), "test.db"), Options{})
	if !ok {
		t.Fatal("Open failed")
	}
	t.Cleanup(s.Close)
	return s
}

func TestOpenEmptyPathFails(t *testing.T) {
	if _, ok := Open("", Options{}); ok {
		t.Fatal("expected Open(\"\") to fail")
	}
}

// Scenario 1: empty glob.
func TestEmptyGlob(t *testing.T) {
	s := openTest(t)
	keys, values, ok := s.Glob([]byte("*"))
	if !ok {
		t.Fatal("empty glob should succeed")
	}
	if len(keys) != 0 || len(values) != 0 {
		t.Fatalf("expected zero results, got %d keys", len(keys))
	}
}

// Scenario 2: single string round-trip.
func TestSingleStringRoundTrip(t *testing.T) {
	s := openTest(t)
	s.SetValue("name", value.String("Alice"), true)
	got, ok := s.CopyValue("name")
	if !ok {
		t.Fatal("CopyValue(name) failed")
	}
	if got.Tag != value.TagString || got.Str != "Alice" {
		t.Fatalf("got %+v", got)
	}
}

// Scenario 3: dictionary round-trip.
func TestDictionaryRoundTrip(t *testing.T) {
	s := openTest(t)
	s.SetValue("u/1", value.Dictionary(
		value.DictEntry{Key: "n", Value: value.String("A")},
		value.DictEntry{Key: "age", Value: value.Integer(30)},
	), true)

	got, ok := s.CopyValue("u/1")
	if !ok || got.Tag != value.TagDictionary {
		t.Fatalf("CopyValue(u/1) = %+v, %v", got, ok)
	}
	n, ok := got.Get("n")
	if !ok || n.Str != "A" {
		t.Fatalf("field n = %+v", n)
	}
	age, ok := got.Get("age")
	if !ok || age.Int != 30 {
		t.Fatalf("field age = %+v", age)
	}
}

// Scenario 4: prefix glob.
func TestPrefixGlob(t *testing.T) {
	s := openTest(t)
	s.SetValue("u/1", value.String("one"), true)
	s.SetValue("u/2", value.String("two"), true)
	s.SetValue("v/1", value.String("other"), true)

	got, ok := s.CopyValue("u/*")
	if !ok || got.Tag != value.TagDictionary {
		t.Fatalf("CopyValue(u/*) = %+v, %v", got, ok)
	}
	if len(got.Dict) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Dict))
	}
	seen := map[string]bool{}
	for _, e := range got.Dict {
		seen[e.Key] = true
	}
	if !seen["u/1"] || !seen["u/2"] {
		t.Fatalf("got keys %v, want u/1 and u/2", seen)
	}
}

// Scenario 5: delete.
func TestDelete(t *testing.T) {
	s := openTest(t)
	s.SetValue("k", value.String("x"), true)
	s.SetValue("k", value.Value{}, false)

	if _, ok := s.CopyValue("k"); ok {
		t.Fatal("expected CopyValue(k) to fail after delete")
	}
}

// Scenario 6: nested array of mixed types.
func TestNestedArrayMixedTypes(t *testing.T) {
	s := openTest(t)
	arr := value.Array(
		value.String("s"),
		value.Integer(-7),
		value.Double(1.5),
		value.Bool(true),
		value.Null(),
	)
	s.SetValue("arr", arr, true)

	got, ok := s.CopyValue("arr")
	if !ok || got.Tag != value.TagArray || len(got.Items) != 5 {
		t.Fatalf("got %+v, %v", got, ok)
	}
	if !value.Equal(got, arr) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, arr)
	}
}

func TestGetEmptyKeyFails(t *testing.T) {
	s := openTest(t)
	if _, ok := s.Get(nil); ok {
		t.Fatal("expected Get(nil) to fail")
	}
}

func TestSetEmptyKeyFails(t *testing.T) {
	s := openTest(t)
	if s.Set(nil, []byte("v"), true) {
		t.Fatal("expected Set with empty key to fail")
	}
}

func TestDeleteAbsentKeySucceeds(t *testing.T) {
	s := openTest(t)
	if !s.Set([]byte("absent"), nil, false) {
		t.Fatal("deleting an absent key should succeed")
	}
}

func TestMalformedGlobPatternFails(t *testing.T) {
	s := openTest(t)
	if _, _, ok := s.Glob([]byte("no-star")); ok {
		t.Fatal("expected malformed glob pattern to fail")
	}
	if _, _, ok := s.Glob(nil); ok {
		t.Fatal("expected empty glob pattern to fail")
	}
}

func TestOverwrite(t *testing.T) {
	s := openTest(t)
	s.SetValue("k", value.String("first"), true)
	s.SetValue("k", value.String("second"), true)
	got, ok := s.CopyValue("k")
	if !ok || got.Str != "second" {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeCacheDoesNotAffectObservableResult(t *testing.T) {
	s, ok := Open(filepath.Join(t.TempDir(), "cached.db"), Options{CacheSize: 16})
	if !ok {
		t.Fatal("Open failed")
	}
	defer s.Close()

	s.SetValue("k", value.String("first"), true)
	if got, _ := s.CopyValue("k"); got.Str != "first" {
		t.Fatalf("got %+v", got)
	}
	s.SetValue("k", value.String("second"), true)
	got, ok := s.CopyValue("k")
	if !ok || got.Str != "second" {
		t.Fatalf("cache served a stale value: got %+v", got)
	}
}

func TestConcurrentAccessDoesNotRace(t *testing.T) {
	s := openTest(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "k"
			s.SetValue(key, value.Integer(int64(i)), true)
			s.CopyValue(key)
			s.Glob([]byte("*"))
		}(i)
	}
	wg.Wait()
}

func TestSyncOnClosedBackendFails(t *testing.T) {
	s := openTest(t)
	s.Close()
	if s.Sync() {
		t.Fatal("expected Sync on closed store to fail")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTest(t)
	src.SetValue("a", value.String("hello"), true)
	src.SetValue("b", value.Integer(7), true)

	var buf bytes.Buffer
	if !src.Export(&buf, "*") {
		t.Fatal("Export failed")
	}

	dst := openTest(t)
	if !dst.Import(&buf) {
		t.Fatal("Import failed")
	}
	got, ok := dst.CopyValue("a")
	if !ok || got.Str != "hello" {
		t.Fatalf("got %+v", got)
	}
	got, ok = dst.CopyValue("b")
	if !ok || got.Int != 7 {
		t.Fatalf("got %+v", got)
	}
}
