// Package storage provides the key-value engines behind SnipBoard's
// persistence adapter.
//
// Engines:
//
//   - BadgerEngine: durable embedded storage (default)
//   - memory.KV: ephemeral map-backed storage for tests and throwaway boards
//
// The board itself is small (two keys), so engines are tuned for low memory
// use rather than throughput.
package storage
