package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/cli/connection"
	"github.com/yndnr/snipboard/internal/core/domain"
)

const themePath = "/api/v1/theme"

// ThemeCommand returns the theme subcommand group.
func ThemeCommand() *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Show or change the dark-mode preference",
		Subcommands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Show the stored preference",
				Action: themeGet,
			},
			{
				Name:      "set",
				Usage:     "Store a preference",
				ArgsUsage: "enabled|disabled|unset",
				Action:    themeSet,
			},
			{
				Name:   "toggle",
				Usage:  "Flip dark mode, as the board's toggle button does",
				Action: themeToggle,
			},
		},
	}
}

func fetchTheme(c *cli.Context, client *connection.Client) (domain.ThemePreference, error) {
	resp, err := client.Get(c.Context, themePath)
	if err != nil {
		return "", err
	}
	var view themeView
	if err := connection.ParseResponse(resp, &view); err != nil {
		return "", err
	}
	return view.Preference, nil
}

func storeTheme(c *cli.Context, client *connection.Client, pref domain.ThemePreference) error {
	resp, err := client.Put(c.Context, themePath, map[string]string{"preference": string(pref)})
	if err != nil {
		return err
	}
	var view themeView
	if err := connection.ParseResponse(resp, &view); err != nil {
		return err
	}
	return printTheme(c, view)
}

func printTheme(c *cli.Context, view themeView) error {
	if !tableOutput(c) {
		return render(c, view)
	}
	fmt.Fprintf(c.App.Writer, "Dark mode: %s\n", view.Preference)
	return nil
}

func themeGet(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	pref, err := fetchTheme(c, client)
	if err != nil {
		return err
	}
	return printTheme(c, themeView{Preference: pref})
}

func themeSet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one preference required: enabled, disabled or unset")
	}
	pref, err := domain.ParseThemePreference(c.Args().First())
	if err != nil {
		return err
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	return storeTheme(c, client, pref)
}

func themeToggle(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	pref, err := fetchTheme(c, client)
	if err != nil {
		return err
	}
	return storeTheme(c, client, pref.Toggle())
}
