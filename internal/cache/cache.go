// Package cache memoizes expensive provider results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache stores byte values by key. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// DefaultMemoryEntries bounds a Memory cache created with size <= 0.
const DefaultMemoryEntries = 1024

// Memory is a process-local LRU cache with optional expiry.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory returns a memory cache holding up to DefaultMemoryEntries values.
// A zero ttl keeps entries until they are evicted.
func NewMemory(ttl time.Duration) *Memory {
	return NewMemorySize(DefaultMemoryEntries, ttl)
}

// NewMemorySize is NewMemory with an explicit entry bound.
func NewMemorySize(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

// Key derives a cache key from an operation name and its inputs.
func Key(op string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strconv.Itoa(len(p))))
		h.Write([]byte{':'})
		h.Write([]byte(p))
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}
