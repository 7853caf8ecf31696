// Package cmap provides a string-keyed concurrent map for SnipBoard.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash, each shard guarded by its own RWMutex. The in-memory KV engine
// uses it so that concurrent handler reads do not serialize on one lock.
//
// Usage:
//
//	m := cmap.New[[]byte]()
//	m.Set("storedFiles", payload)
//	val, ok := m.Get("storedFiles")
package cmap
