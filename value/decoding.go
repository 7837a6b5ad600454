package value

import (
	"encoding/binary"
	"math"
)

// decoder reads a byte slice left to right. Every read method is total:
// running out of bytes never returns an error, it yields zeroes (per
// §4.3.1) and leaves the cursor pinned at the end, so later reads keep
// yielding zeroes instead of panicking or looping.
type decoder struct {
	buf []byte
}

func (d *decoder) readFixed(n int) []byte {
	out := make([]byte, n)
	k := copy(out, d.buf)
	if k < n {
		d.buf = nil
	} else {
		d.buf = d.buf[n:]
	}
	return out
}

// boundedLen clamps an untrusted wire length to what's actually left in
// the buffer, the same bounds-then-allocate move readData makes. Callers
// that read a variable, attacker-controlled length (a String body, a
// Dictionary key) must route it through this before turning it into an
// int and handing it to readFixed/make: an unclamped uint64 length near
// 2^64 casts to a negative int on a 64-bit platform, and make panics on
// a negative or absurdly large length instead of degrading per §4.3.1.
func (d *decoder) boundedLen(n uint64) int {
	if n > uint64(len(d.buf)) {
		return len(d.buf)
	}
	return int(n)
}

func (d *decoder) readUvarint() uint64 {
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		d.buf = nil
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *decoder) readTag() Tag {
	return Tag(binary.LittleEndian.Uint32(d.readFixed(4)))
}

func (d *decoder) readUint64() uint64 {
	return binary.LittleEndian.Uint64(d.readFixed(8))
}

// readData implements the Data-specific truncation rule: unlike a
// primitive field, running out of bytes for the payload yields Null for
// the whole value rather than a zero-padded slice.
func (d *decoder) readData(n uint64) ([]byte, bool) {
	if uint64(len(d.buf)) < n {
		d.buf = nil
		return nil, false
	}
	out := make([]byte, n)
	copy(out, d.buf[:n])
	d.buf = d.buf[n:]
	return out, true
}

// Decode parses data into a Value tree per §4.3.1. It never fails: an
// unrecognized leading tag, a truncated buffer, or garbage input all
// decode to some Value (typically Null), never an error. An empty buffer
// reads as a zero tag and so decodes to String("").
func Decode(data []byte) Value {
	d := &decoder{buf: data}
	return decodeValue(d)
}

func decodeValue(d *decoder) Value {
	switch d.readTag() {
	case TagString:
		n := d.readUvarint()
		return String(string(d.readFixed(d.boundedLen(n))))
	case TagData:
		n := d.readUvarint()
		raw, ok := d.readData(n)
		if !ok {
			return Null()
		}
		return Data(raw)
	case TagIntegerLL:
		return Integer(int64(d.readUint64()))
	case TagDouble:
		return Double(math.Float64frombits(d.readUint64()))
	case TagBoolTrue:
		return Bool(true)
	case TagBoolFalse:
		return Bool(false)
	case TagDate:
		return DateSeconds(math.Float64frombits(d.readUint64()))
	case TagDictionary:
		count := d.readUvarint()
		entries := make([]DictEntry, 0, clampCount(count))
		for i := uint64(0); i < count && len(d.buf) > 0; i++ {
			d.readFixed(4) // skip the reserved placeholder tag
			keyLen := d.readUvarint()
			key := string(d.readFixed(d.boundedLen(keyLen)))
			entries = append(entries, DictEntry{Key: key, Value: decodeValue(d)})
		}
		return Dictionary(entries...)
	case TagArray:
		count := d.readUvarint()
		items := make([]Value, 0, clampCount(count))
		for i := uint64(0); i < count && len(d.buf) > 0; i++ {
			items = append(items, decodeValue(d))
		}
		return Array(items...)
	case TagSet:
		count := d.readUvarint()
		items := make([]Value, 0, clampCount(count))
		for i := uint64(0); i < count && len(d.buf) > 0; i++ {
			items = append(items, decodeValue(d))
		}
		return Set(items...)
	case TagNull:
		return Null()
	default:
		return Null()
	}
}

// clampCount bounds a pre-sized slice allocation derived directly from
// untrusted wire data, so a corrupt or adversarial count can't trigger a
// huge up-front allocation. The decode loops above additionally stop as
// soon as the buffer is exhausted, so an adversarial count (up to
// math.MaxUint64) can't turn into a multi-billion-iteration loop either:
// the buffer can only ever supply a bounded number of real entries.
func clampCount(n uint64) int {
	const maxPrealloc = 4096
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
