// Package tlsroots handles TLS material for SnipBoard.
//
//   - roots.go: trust pools for the CLI client (system roots plus --ca-file)
//   - watcher.go: server certificate hot reload on confloader.Watcher
package tlsroots
