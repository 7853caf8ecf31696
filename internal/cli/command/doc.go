// Package command provides the snipboard-cli command tree.
//
// Commands are built with urfave/cli/v2. Each action resolves the global
// connection settings (flags over environment over ~/.snipboard/cli.yaml),
// calls the board API and prints the result as a table, JSON or YAML.
// Results go to App.Writer so tests can capture them.
//
// parse and config run offline; everything else needs a server.
package command
