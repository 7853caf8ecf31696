package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/core/domain"
)

// ParseCommand returns the offline parse command.
func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Show the snippets a file would produce, without a server",
		ArgsUsage: "FILE|-",
		Action:    parseAction,
	}
}

func parseAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("file required (use - for stdin)")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	snippets := domain.ParseSnippets(domain.SanitizeContent(string(data)))
	if tableOutput(c) && len(snippets) == 0 {
		fmt.Fprintln(c.App.Writer, "No commands found.")
		return nil
	}
	return render(c, snippetList(snippets))
}
