// Package command provides the snipboard-cli command tree.
package command

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/cli/config"
	"github.com/yndnr/snipboard/internal/cli/connection"
	"github.com/yndnr/snipboard/internal/cli/output"
	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/infra/buildinfo"
	"github.com/yndnr/snipboard/internal/infra/tlsroots"
)

const metaConfig = "cliConfig"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "snipboard-cli",
		Usage:   "SnipBoard command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			DocumentCommand(),
			ThemeCommand(),
			ExportCommand(),
			ImportCommand(),
			ParseCommand(),
			SystemCommand(),
			ConfigCommand(),
		},
		Metadata: map[string]any{},
		Before:   loadConfig,
	}
}

// globalFlags returns the global CLI flags. Connection flags carry no
// default value so the config file can supply one.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.snipboard/cli.yaml)",
			EnvVars: []string{"SNIPBOARD_CLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address: host:port, http(s)://host:port or unix:///path.sock",
			EnvVars: []string{"SNIPBOARD_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
			EnvVars: []string{"SNIPBOARD_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "PEM CA bundle for https servers",
			EnvVars: []string{"SNIPBOARD_CA_FILE"},
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "skip TLS certificate verification",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "print connection details to stderr",
		},
	}
}

func loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	c.App.Metadata[metaConfig] = cfg
	return nil
}

// GlobalFlags holds the resolved connection and output settings.
type GlobalFlags struct {
	Server   string
	Output   output.Format
	Timeout  time.Duration
	CAFile   string
	Insecure bool
	Verbose  bool
}

// ParseGlobalFlags resolves settings: explicit flags and environment
// variables win over the config file.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig)
	if !ok {
		cfg = config.Default()
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	g := &GlobalFlags{
		Server:   cfg.Server,
		Timeout:  timeout,
		CAFile:   cfg.CAFile,
		Insecure: cfg.Insecure,
		Verbose:  c.Bool("verbose"),
	}

	format := cfg.Output
	if c.IsSet("output") {
		format = c.String("output")
	}
	if g.Output, err = output.ParseFormat(format); err != nil {
		return nil, err
	}
	if c.IsSet("server") {
		g.Server = c.String("server")
	}
	if c.IsSet("timeout") {
		g.Timeout = c.Duration("timeout")
	}
	if c.IsSet("ca-file") {
		g.CAFile = c.String("ca-file")
	}
	if c.IsSet("insecure") {
		g.Insecure = c.Bool("insecure")
	}
	return g, nil
}

// EnsureConnected builds a client for the resolved server.
func EnsureConnected(c *cli.Context) (*connection.Client, error) {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return nil, err
	}

	var tlsCfg *tls.Config
	if strings.HasPrefix(flags.Server, "https://") || flags.CAFile != "" || flags.Insecure {
		if tlsCfg, err = tlsroots.ClientConfig(flags.CAFile, flags.Insecure); err != nil {
			return nil, fmt.Errorf("tls: %w", err)
		}
	}

	client, err := connection.NewClient(connection.Options{
		Server:    flags.Server,
		Timeout:   flags.Timeout,
		TLSConfig: tlsCfg,
	})
	if err != nil {
		return nil, err
	}
	if flags.Verbose {
		fmt.Fprintf(c.App.ErrWriter, "server: %s (timeout %s)\n", flags.Server, flags.Timeout)
	}
	return client, nil
}

// render prints data in the selected output format.
func render(c *cli.Context, data any) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(flags.Output).Format(c.App.Writer, data)
}

// tableOutput reports whether human-readable output is selected.
func tableOutput(c *cli.Context) bool {
	flags, err := ParseGlobalFlags(c)
	return err == nil && flags.Output == output.FormatTable
}

// documentArg parses the positional argument at i as a document id.
func documentArg(c *cli.Context, i int) (domain.DocumentID, error) {
	s := c.Args().Get(i)
	if s == "" {
		return 0, fmt.Errorf("document ID required")
	}
	return domain.ParseDocumentID(s)
}
