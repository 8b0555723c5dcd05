package tensor

import (
	"sync"
	"sync/atomic"
)

// tensorBuffer is a reference-counted shared buffer for Copy-on-Write semantics.
// Several tensors (views) may point at one buffer; writers must detach first
// unless refCount == 1.
type tensorBuffer[E Element] struct {
	data     []E
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new zero-filled buffer with refCount = 1.
func newTensorBuffer[E Element](size int) *tensorBuffer[E] {
	buf := &tensorBuffer[E]{
		data: make([]E, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone and view operations).
func (tb *tensorBuffer[E]) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer[E]) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer[E]) isUnique() bool {
	return tb.refCount.Load() == 1
}
