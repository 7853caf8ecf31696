// Package main provides the entry point for snipboard-cli.
//
// snipboard-cli manages a running snipboard-server board from the terminal:
// listing, opening, closing and reordering tabs, switching the theme and
// moving the board in and out as JSON. The parse command works offline.
//
// Connect over HTTP with --server host:port or over the local socket with
// --server unix:///path/to/snipboard.sock.
package main
