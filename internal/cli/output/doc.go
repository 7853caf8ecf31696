// Package output formats snipboard-cli results as table, JSON or YAML.
//
// Values that implement Tabular choose their own table layout; other
// values are laid out from their fields. JSON and YAML print the value
// as the API returned it, for scripting.
package output
