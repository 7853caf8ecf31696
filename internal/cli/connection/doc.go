// Package connection provides the snipboard-cli client for the board API.
//
// A Client speaks HTTP to the server over TCP (http:// or https://) or
// over the server's local Unix socket (unix:///path). Responses use the
// server's JSON envelope; ParseResponse unwraps data on success and turns
// error envelopes into *APIError.
package connection
