// Package config provides snipboard-cli configuration.
//
// The CLI reads ~/.snipboard/cli.yaml (override with --config). Values
// resolve in this order, highest first:
//
//   - command-line flags
//   - SNIPBOARD_* environment variables
//   - the config file
//   - built-in defaults
//
// A missing file is not an error; the defaults apply.
package config
