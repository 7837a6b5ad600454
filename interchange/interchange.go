// Package interchange provides a msgpack encoding of vsdb value trees
// for backup, diffing, and inspection with generic msgpack tooling. It
// is deliberately independent of the on-disk wire format in package
// value — see SPEC_FULL.md §4.3.1 — and of package vsdb itself, so that
// vsdb can depend on interchange without an import cycle.
//
// Grounded in the teacher's own encoding.go, which wires
// vmihailenco/msgpack/v5 the same way (GetEncoder/SetSortMapKeys) for
// its row-struct encoding.
package interchange

import (
	"fmt"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lembacon/vsdb/value"
)

// Entry is one key/value pair as exchanged with the outside world: the
// value has already been decoded off the wire into a tree.
type Entry struct {
	Key   string
	Value wireValue
}

// wireValue is the msgpack-friendly mirror of value.Value. msgpack can't
// serialize value.Value directly (it has no exported tag-to-type
// switch), so each entry round-trips through this flat struct instead.
type wireValue struct {
	Tag   uint32      `msgpack:"tag"`
	Str   string      `msgpack:"str,omitempty"`
	Bytes []byte      `msgpack:"bytes,omitempty"`
	Int   int64       `msgpack:"int,omitempty"`
	Num   float64     `msgpack:"num,omitempty"`
	Dict  []wireEntry `msgpack:"dict,omitempty"`
	Items []wireValue `msgpack:"items,omitempty"`
}

type wireEntry struct {
	Key   string    `msgpack:"key"`
	Value wireValue `msgpack:"value"`
}

func toWire(v value.Value) wireValue {
	w := wireValue{Tag: uint32(v.Tag), Str: v.Str, Bytes: v.Bytes, Int: v.Int, Num: v.Num}
	for _, e := range v.Dict {
		w.Dict = append(w.Dict, wireEntry{Key: e.Key, Value: toWire(e.Value)})
	}
	for _, item := range v.Items {
		w.Items = append(w.Items, toWire(item))
	}
	return w
}

func fromWire(w wireValue) value.Value {
	v := value.Value{Tag: value.Tag(w.Tag), Str: w.Str, Bytes: w.Bytes, Int: w.Int, Num: w.Num}
	for _, e := range w.Dict {
		v.Dict = append(v.Dict, value.DictEntry{Key: e.Key, Value: fromWire(e.Value)})
	}
	for _, item := range w.Items {
		v.Items = append(v.Items, fromWire(item))
	}
	return v
}

// NewEntry wraps a decoded value tree for export.
func NewEntry(key string, v value.Value) Entry {
	return Entry{Key: key, Value: toWire(v)}
}

// Decoded unwraps an Entry back into a value tree.
func (e Entry) Decoded() value.Value { return fromWire(e.Value) }

// Write encodes entries to w as a single msgpack array, sorted by key so
// two exports of the same logical content are byte-identical — mirrors
// the teacher's SetSortMapKeys(true) determinism guarantee, applied here
// to the entry list itself since msgpack arrays have no map-key sorting
// of their own.
func Write(w io.Writer, entries []Entry) error {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("interchange: encode: %w", err)
	}
	return nil
}

// Read decodes an entry list previously produced by Write.
func Read(r io.Reader) ([]Entry, error) {
	dec := msgpack.NewDecoder(r)
	var entries []Entry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("interchange: decode: %w", err)
	}
	return entries, nil
}
