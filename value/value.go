// Package value implements the tagged value tree that vsdb stores: a
// closed sum of primitive and container variants, encoded with the
// recursive binary codec in encoding.go.
package value

// Tag identifies which variant a Value holds. Tags are part of the wire
// format (see encoding.go) and must never be renumbered.
type Tag uint32

const (
	TagString Tag = iota
	TagData
	TagIntegerLL
	TagDouble
	TagBoolTrue
	TagBoolFalse
	TagDate
	TagDictionary
	TagArray
	TagSet
	TagNull

	tagCount // sentinel, not a valid wire tag
)

// DictEntry is one (key, value) pair of a Dictionary. Keys are always
// strings; order is preserved on encode but is not part of the equality
// contract (Dictionary equality is by key set).
type DictEntry struct {
	Key   string
	Value Value
}

// Value is a node of the value tree described by the spec: exactly one
// of its fields is meaningful, selected by Tag.
type Value struct {
	Tag Tag

	Str   string  // TagString
	Bytes []byte  // TagData
	Int   int64   // TagIntegerLL
	Num   float64 // TagDouble, TagDate (seconds since the reference epoch)
	Dict  []DictEntry
	Items []Value // TagArray, TagSet
}

func String(s string) Value          { return Value{Tag: TagString, Str: s} }
func Data(b []byte) Value            { return Value{Tag: TagData, Bytes: b} }
func Integer(i int64) Value          { return Value{Tag: TagIntegerLL, Int: i} }
func Double(f float64) Value         { return Value{Tag: TagDouble, Num: f} }
func DateSeconds(secs float64) Value { return Value{Tag: TagDate, Num: secs} }
func Null() Value                    { return Value{Tag: TagNull} }

func Bool(b bool) Value {
	if b {
		return Value{Tag: TagBoolTrue}
	}
	return Value{Tag: TagBoolFalse}
}

func Dictionary(entries ...DictEntry) Value {
	return Value{Tag: TagDictionary, Dict: entries}
}

func Array(items ...Value) Value {
	return Value{Tag: TagArray, Items: items}
}

func Set(items ...Value) Value {
	return Value{Tag: TagSet, Items: items}
}

// IsNull reports whether v holds the Null variant. The zero Value is not
// Null: its Tag is TagString, so it is an empty String.
func (v Value) IsNull() bool {
	return v.Tag == TagNull
}

// Bool reports the boolean encoded by v, and whether v was actually a
// boolean variant.
func (v Value) Bool() (bool, bool) {
	switch v.Tag {
	case TagBoolTrue:
		return true, true
	case TagBoolFalse:
		return false, true
	default:
		return false, false
	}
}

// Get returns the value for key in a Dictionary, or Null, false if v is
// not a Dictionary or has no such key.
func (v Value) Get(key string) (Value, bool) {
	if v.Tag != TagDictionary {
		return Null(), false
	}
	for _, e := range v.Dict {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Null(), false
}
