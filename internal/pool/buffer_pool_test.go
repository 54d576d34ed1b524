package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolReturnsEmptyBuffers(t *testing.T) {
	bp := NewBufferPool(64)

	buf := bp.Get()
	assert.Empty(t, *buf)
	assert.GreaterOrEqual(t, cap(*buf), 64)

	*buf = append(*buf, "heading"...)
	bp.Put(buf)

	again := bp.Get()
	assert.Empty(t, *again)
}

func TestBufferPoolDropsOversizedBuffers(t *testing.T) {
	bp := NewBufferPool(4)
	buf := bp.Get()
	*buf = make([]byte, 0, 4*maxGrowth+1)
	bp.Put(buf)

	assert.Empty(t, *bp.Get())
}

func TestLinePoolClearsLines(t *testing.T) {
	lp := NewLinePool(2)
	lines := lp.Get()
	*lines = append(*lines, "a", "b", "c")
	lp.Put(lines)

	assert.Empty(t, *lines)
	assert.Empty(t, *lp.Get())
}
