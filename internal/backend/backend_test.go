package backend

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestPutGetDelete(t *testing.T) {
	b := openTemp(t)

	if _, found, err := b.Get([]byte("missing")); err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}

	if err := b.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	val, found, err := b.Get([]byte("k"))
	if err != nil || !found || string(val) != "v" {
		t.Fatalf("Get = %q, %v, %v", val, found, err)
	}

	if err := b.Delete([]byte("k")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := b.Get([]byte("k")); found {
		t.Fatal("key still present after Delete")
	}
}

func TestDeleteAbsentIsNotError(t *testing.T) {
	b := openTemp(t)
	if err := b.Delete([]byte("nope")); err != nil {
		t.Fatalf("Delete of absent key returned error: %v", err)
	}
}

func TestRangeOrdered(t *testing.T) {
	b := openTemp(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := b.Put([]byte(k), []byte(k)); err != nil {
			t.Fatal(err)
		}
	}

	var seen []string
	err := b.Range(nil, func(e Entry) bool {
		seen = append(seen, string(e.Key))
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestRangeSeekPrefix(t *testing.T) {
	b := openTemp(t)
	for _, k := range []string{"user/1", "user/2", "group/1"} {
		b.Put([]byte(k), []byte("x"))
	}

	var seen []string
	err := b.Range([]byte("user/"), func(e Entry) bool {
		if !HasPrefix(e.Key, []byte("user/")) {
			return false
		}
		seen = append(seen, string(e.Key))
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Fatalf("got %v", seen)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	b1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b1.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := b1.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected db file on disk: %v", err)
	}

	b2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()
	val, found, err := b2.Get([]byte("k"))
	if err != nil || !found || string(val) != "v" {
		t.Fatalf("Get after reopen = %q, %v, %v", val, found, err)
	}
}
