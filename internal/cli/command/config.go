package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/snipboard/internal/cli/config"
	serverconfig "github.com/yndnr/snipboard/internal/server/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI and server configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the resolved CLI settings",
				Action: configShow,
			},
			{
				Name:  "init",
				Usage: "Write a CLI config file with the current settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing file"},
				},
				Action: configInit,
			},
			{
				Name:      "check",
				Usage:     "Validate a server config file plus SNIPBOARD_* environment",
				ArgsUsage: "FILE",
				Action:    configCheck,
			},
		},
	}
}

func configPath(c *cli.Context) string {
	if p := c.String("config"); p != "" {
		return p
	}
	return cliconfig.DefaultConfigPath()
}

type settingsView struct {
	ConfigFile string `json:"config_file" table:"CONFIG FILE"`
	Server     string `json:"server"`
	Output     string `json:"output"`
	Timeout    string `json:"timeout"`
	CAFile     string `json:"ca_file,omitempty" table:"CA FILE"`
	Insecure   bool   `json:"insecure"`
}

func configShow(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	return render(c, settingsView{
		ConfigFile: configPath(c),
		Server:     flags.Server,
		Output:     string(flags.Output),
		Timeout:    flags.Timeout.String(),
		CAFile:     flags.CAFile,
		Insecure:   flags.Insecure,
	})
}

func configInit(c *cli.Context) error {
	path := configPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	cfg := &cliconfig.CLIConfig{
		Server:   flags.Server,
		Output:   string(flags.Output),
		Timeout:  flags.Timeout.String(),
		CAFile:   flags.CAFile,
		Insecure: flags.Insecure,
	}
	if err := cliconfig.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

// configCheck loads a server config the way snipboard-server does.
// Verify creates the badger data directory when it is missing.
func configCheck(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("server config file required")
	}

	cfg, err := serverconfig.Load(path)
	if err != nil {
		return err
	}
	if err := serverconfig.Verify(cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if tableOutput(c) {
		fmt.Fprintf(c.App.Writer, "%s is valid.\n\n", path)
	}
	return render(c, serverconfig.Sanitize(cfg))
}
