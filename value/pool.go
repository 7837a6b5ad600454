package value

import "sync"

// encodeBufferPool recycles Encode's scratch buffers, the same
// sync.Pool-of-byte-slices idiom the teacher uses for its row/key/index
// buffers in pools.go, narrowed here to the single buffer Encode needs.
var encodeBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, encodeInitialCap)
		return &buf
	},
}

func getEncodeBuffer() *[]byte {
	return encodeBufferPool.Get().(*[]byte)
}

func putEncodeBuffer(buf *[]byte) {
	*buf = (*buf)[:0]
	encodeBufferPool.Put(buf)
}
