package handler

import (
	"bytes"
	"sync"
)

// Response bodies are encoded into pooled buffers so that farm reads under
// cache-hit load do not allocate per request. 512 bytes covers a typical
// farm info projection.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
