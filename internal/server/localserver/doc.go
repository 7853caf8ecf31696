// Package localserver serves the board API on a Unix domain socket.
//
// The socket carries the same HTTP handler as the TCP listener, so
// snipboard-cli on the same host can reach the board without a network
// port. Access is controlled by the socket file's permissions.
//
// A stale socket left behind by a crashed process is removed on start;
// a socket that still accepts connections is treated as in use.
package localserver
