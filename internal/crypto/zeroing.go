package crypto

import (
	"crypto/subtle"
	"sync"
)

// SecureZero overwrites a byte slice with zeros to prevent sensitive data
// from persisting in memory.
//
// ⚠️ SECURITY NOTE: Due to Go's garbage collector and potential compiler
// optimizations, this function cannot guarantee complete erasure.
//
// The function uses subtle.ConstantTimeCopy to prevent the compiler from
// optimizing away the zeroing operation.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros multiple byte slices in a single call.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// KeyMaterial wraps sensitive bytes with zeroing on Close().
//
// Example:
//
//	km := NewKeyMaterial(raw)
//	defer km.Close()
//	// ... use km.Bytes() ...
type KeyMaterial struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// NewKeyMaterial creates a new KeyMaterial wrapper.
// The data is copied to prevent modification of the original slice.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the underlying data.
// Returns nil if the KeyMaterial has been closed.
func (km *KeyMaterial) Bytes() []byte {
	km.mu.Lock()
	defer km.mu.Unlock()
	if km.closed {
		return nil
	}
	return km.data
}

// With calls fn with the data while holding the lock, so Close cannot zero it
// mid-use. It reports false without calling fn if the KeyMaterial is closed.
func (km *KeyMaterial) With(fn func(b []byte)) bool {
	km.mu.Lock()
	defer km.mu.Unlock()
	if km.closed {
		return false
	}
	fn(km.data)
	return true
}

// Len returns the length of the data.
func (km *KeyMaterial) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	if km.closed {
		return 0
	}
	return len(km.data)
}

// Close securely zeros the data and marks it as closed.
// This method is idempotent and safe for concurrent use.
func (km *KeyMaterial) Close() {
	km.mu.Lock()
	defer km.mu.Unlock()
	if km.closed {
		return
	}
	SecureZero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed returns whether the KeyMaterial has been closed.
func (km *KeyMaterial) IsClosed() bool {
	km.mu.Lock()
	defer km.mu.Unlock()
	return km.closed
}
