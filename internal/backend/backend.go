// Package backend wraps a single go.etcd.io/bbolt database as the
// ordered, persistent byte-string map described in spec.md §4.1. It is
// the only package that imports bbolt directly; everything above it
// (the vsdb package) talks to this narrow interface instead, the same
// separation the teacher draws between edb and its storage.go/
// storage_bolt.go pair.
package backend

import (
	"bytes"
	"fmt"

	"go.etcd.io/bbolt"
)

// rootBucket is the single top-level bucket vsdb stores everything in.
// The spec's data model has no notion of buckets or namespaces above the
// flat key space, so one fixed bucket is all bbolt's API requires.
var rootBucket = []byte("vsdb")

// Backend is an open bbolt-backed ordered map.
type Backend struct {
	bdb *bbolt.DB
}

// Open creates the file if it doesn't exist (mode 0644) and ensures the
// root bucket is present, matching spec.md §4.1's open contract.
func Open(path string) (*Backend, error) {
	bdb, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: open %q: %w", path, err)
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("backend: create root bucket: %w", err)
	}
	return &Backend{bdb: bdb}, nil
}

// Close flushes and releases OS resources.
func (b *Backend) Close() error {
	return b.bdb.Close()
}

// Sync forces durability of all buffered writes.
func (b *Backend) Sync() error {
	return b.bdb.Sync()
}

// Get performs a point lookup. The returned slice is a copy, safe to use
// after Get returns (unlike a raw bbolt.Bucket.Get result, which is only
// valid for the lifetime of the surrounding transaction).
func (b *Backend) Get(key []byte) (value []byte, found bool, err error) {
	err = b.bdb.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(rootBucket).Get(key)
		if raw == nil {
			return nil
		}
		found = true
		value = append([]byte(nil), raw...)
		return nil
	})
	return value, found, err
}

// Put inserts or overwrites key.
func (b *Backend) Put(key, value []byte) error {
	return b.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rootBucket).Put(key, value)
	})
}

// Delete removes key. Deleting an absent key is not an error, matching
// bbolt's own semantics and spec.md §4.1's del contract.
func (b *Backend) Delete(key []byte) error {
	return b.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rootBucket).Delete(key)
	})
}

// Entry is one (key, value) pair yielded by a Range walk. Both slices
// are copies, safe to retain past the call that produced them.
type Entry struct {
	Key   []byte
	Value []byte
}

// Range walks the map in key-ascending order starting at the first key
// >= from (or at the very first key, if from is nil), invoking yield for
// each entry until yield returns false or the map is exhausted. It runs
// inside a single read transaction, giving the caller a consistent
// snapshot for the whole walk — the bbolt analogue of the reference's
// db->seq(R_FIRST)/db->seq(R_NEXT) cursor loop in original_source.
func (b *Backend) Range(from []byte, yield func(Entry) bool) error {
	return b.bdb.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(rootBucket).Cursor()
		var k, v []byte
		if from == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(from)
		}
		for k != nil {
			if !yield(Entry{Key: append([]byte(nil), k...), Value: append([]byte(nil), v...)}) {
				return nil
			}
			k, v = c.Next()
		}
		return nil
	})
}

// HasPrefix is the byte-string prefix test used by Range callers
// implementing glob("P*") — kept here so the comparison matches bbolt's
// own key ordering assumptions exactly.
func HasPrefix(key, prefix []byte) bool {
	return bytes.HasPrefix(key, prefix)
}
