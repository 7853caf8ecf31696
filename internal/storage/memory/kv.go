// Package memory provides an in-memory KVEngine for SnipBoard.
package memory

import (
	"context"
	"sync/atomic"

	"github.com/yndnr/snipboard/internal/storage"
	"github.com/yndnr/snipboard/pkg/cmap"
)

// KV implements storage.KVEngine on a sharded concurrent map.
type KV struct {
	data   *cmap.Map[[]byte]
	closed atomic.Bool
}

// NewKV creates an empty in-memory engine.
func NewKV() *KV {
	return &KV{data: cmap.New[[]byte]()}
}

// Get retrieves a copy of the value stored under key.
func (kv *KV) Get(_ context.Context, key []byte) ([]byte, error) {
	if kv.closed.Load() {
		return nil, storage.ErrClosed
	}
	val, ok := kv.data.Get(string(key))
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return clone(val), nil
}

// Set stores a copy of value under key.
func (kv *KV) Set(_ context.Context, key, value []byte) error {
	if kv.closed.Load() {
		return storage.ErrClosed
	}
	kv.data.Set(string(key), clone(value))
	return nil
}

// Delete removes a key.
func (kv *KV) Delete(_ context.Context, key []byte) error {
	if kv.closed.Load() {
		return storage.ErrClosed
	}
	kv.data.Delete(string(key))
	return nil
}

// Scan iterates over keys with a given prefix in ascending order.
func (kv *KV) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	if kv.closed.Load() {
		return storage.ErrClosed
	}

	var err error
	kv.data.RangePrefix(string(prefix), func(k string, v []byte) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		return fn([]byte(k), clone(v))
	})
	return err
}

// Stats returns key count and payload size.
func (kv *KV) Stats(_ context.Context) (*storage.KVStats, error) {
	if kv.closed.Load() {
		return nil, storage.ErrClosed
	}

	var size uint64
	kv.data.RangePrefix("", func(k string, v []byte) bool {
		size += uint64(len(k) + len(v))
		return true
	})

	return &storage.KVStats{
		Engine:    storage.EngineMemory,
		TotalKeys: uint64(kv.data.Count()),
		TotalSize: size,
	}, nil
}

// Close drops all data. Calling Close more than once is safe.
func (kv *KV) Close() error {
	if kv.closed.Swap(true) {
		return nil
	}
	kv.data.Clear()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ storage.KVEngine = (*KV)(nil)
