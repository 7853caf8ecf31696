// Package config provides snipboard-cli configuration.
package config

// CLIConfig is the configuration for snipboard-cli.
type CLIConfig struct {
	// Server is host:port, an http(s):// URL, or unix:///path/to.sock.
	Server string `yaml:"server"`

	// Output is table, json or yaml.
	Output string `yaml:"output"`

	// Timeout bounds each request, as a Go duration string.
	Timeout string `yaml:"timeout"`

	// CAFile adds a PEM bundle to the system roots for https servers.
	CAFile string `yaml:"ca_file,omitempty"`

	// Insecure skips server certificate verification.
	Insecure bool `yaml:"insecure,omitempty"`
}

// Defaults.
const (
	DefaultServer  = "localhost:5080"
	DefaultOutput  = "table"
	DefaultTimeout = "30s"
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  DefaultServer,
		Output:  DefaultOutput,
		Timeout: DefaultTimeout,
	}
}
