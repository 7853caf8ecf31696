// Package service provides the board services for SnipBoard.
//
// DocumentStore owns the ordered open documents and the active pointer
// and saves after every mutation. TabController is the entry point for
// presentation code (HTTP handlers, templates): it applies the upload
// policy, translates "not found" into domain errors and exposes read-only
// snapshots for rendering.
package service
