package value

import (
	"encoding/binary"
	"math"
)

// Wire format: tag-first, length-prefixed, depth-first recursion. Unlike
// the reference implementation (which writes counts and integers at host
// width and host byte order), this port fixes the wire format to
// little-endian fixed-size fields and uvarint-encoded counts/lengths, so
// that a store written on one platform can be read on another. See
// DESIGN.md for why bug-compatible host-width encoding was not kept.
//
// The Dictionary entry format still reserves a throwaway 4-byte slot
// ahead of each key's string body — the reference never explains why,
// but the spec requires preserving it for layout fidelity.

const encodeInitialCap = 512

type builder struct {
	buf []byte
}

func ensureCap(buf []byte, minCap int) []byte {
	c := cap(buf)
	if minCap <= c {
		return buf
	}
	if c < encodeInitialCap {
		c = encodeInitialCap
	}
	for minCap > c {
		c <<= 1
	}
	grown := make([]byte, len(buf), c)
	copy(grown, buf)
	return grown
}

func (b *builder) grow(n int) int {
	off := len(b.buf)
	b.buf = ensureCap(b.buf, off+n)
	b.buf = b.buf[:off+n]
	return off
}

func (b *builder) writeTag(t Tag) {
	off := b.grow(4)
	binary.LittleEndian.PutUint32(b.buf[off:], uint32(t))
}

func (b *builder) writeUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	off := b.grow(n)
	copy(b.buf[off:], tmp[:n])
}

func (b *builder) writeRaw(p []byte) {
	off := b.grow(len(p))
	copy(b.buf[off:], p)
}

func (b *builder) writeUint64(v uint64) {
	off := b.grow(8)
	binary.LittleEndian.PutUint64(b.buf[off:], v)
}

// Encode serializes v following §4.3/§4.3.2: the backing buffer grows by
// doubling from 512 bytes and is trimmed to exact size before it is
// handed to the caller.
func Encode(v Value) []byte {
	scratch := getEncodeBuffer()
	defer putEncodeBuffer(scratch)

	b := &builder{buf: *scratch}
	encodeValue(b, v)
	*scratch = b.buf

	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

func encodeValue(b *builder, v Value) {
	switch v.Tag {
	case TagString:
		b.writeTag(TagString)
		raw := []byte(v.Str)
		b.writeUvarint(uint64(len(raw)))
		b.writeRaw(raw)
	case TagData:
		b.writeTag(TagData)
		b.writeUvarint(uint64(len(v.Bytes)))
		b.writeRaw(v.Bytes)
	case TagIntegerLL:
		b.writeTag(TagIntegerLL)
		b.writeUint64(uint64(v.Int))
	case TagDouble:
		b.writeTag(TagDouble)
		b.writeUint64(math.Float64bits(v.Num))
	case TagBoolTrue:
		b.writeTag(TagBoolTrue)
	case TagBoolFalse:
		b.writeTag(TagBoolFalse)
	case TagDate:
		b.writeTag(TagDate)
		b.writeUint64(math.Float64bits(v.Num))
	case TagDictionary:
		b.writeTag(TagDictionary)
		b.writeUvarint(uint64(len(v.Dict)))
		for _, e := range v.Dict {
			b.writeTag(0) // reserved placeholder, skipped on decode
			raw := []byte(e.Key)
			b.writeUvarint(uint64(len(raw)))
			b.writeRaw(raw)
			encodeValue(b, e.Value)
		}
	case TagArray:
		b.writeTag(TagArray)
		b.writeUvarint(uint64(len(v.Items)))
		for _, item := range v.Items {
			encodeValue(b, item)
		}
	case TagSet:
		b.writeTag(TagSet)
		b.writeUvarint(uint64(len(v.Items)))
		for _, item := range v.Items {
			encodeValue(b, item)
		}
	case TagNull:
		b.writeTag(TagNull)
	default:
		// Unrecognized input variant: encode as a bare Null tag (§4.3.2).
		b.writeTag(TagNull)
	}
}
