// Package memory provides an in-memory KVEngine for SnipBoard.
//
// It backs the "memory" storage engine, used for ephemeral boards and in
// tests. Nothing written to it survives a restart.
package memory
