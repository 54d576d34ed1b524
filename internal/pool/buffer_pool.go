package pool

import "sync"

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified capacity
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves an empty buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	*buffer = (*buffer)[:0]
	return buffer
}

// Put returns a buffer to the pool for reuse.
// Buffers that grew far beyond the pool size are dropped so one huge
// heading does not pin memory for the life of the process.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > bp.size*maxGrowth {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

const maxGrowth = 16

// LinePool hands out slices of lines for batch processing
type LinePool struct {
	pool      sync.Pool
	batchSize int
}

// NewLinePool creates a pool of line slices with the given batch capacity
func NewLinePool(batchSize int) *LinePool {
	return &LinePool{
		pool: sync.Pool{
			New: func() interface{} {
				lines := make([]string, 0, batchSize)
				return &lines
			},
		},
		batchSize: batchSize,
	}
}

// Get retrieves an empty line slice
func (lp *LinePool) Get() *[]string {
	lines := lp.pool.Get().(*[]string)
	*lines = (*lines)[:0]
	return lines
}

// Put clears the line references and returns the slice to the pool
func (lp *LinePool) Put(lines *[]string) {
	for i := range *lines {
		(*lines)[i] = ""
	}
	*lines = (*lines)[:0]
	lp.pool.Put(lines)
}
