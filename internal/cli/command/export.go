package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/cli/connection"
	"github.com/yndnr/snipboard/internal/core/domain"
)

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the open documents as a JSON list of {name, content}",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "write to FILE instead of stdout",
			},
		},
		Action: exportAction,
	}
}

// ImportCommand returns the import command.
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Open every document of an export file as new tabs",
		ArgsUsage: "FILE|-",
		Action:    importAction,
	}
}

func exportAction(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Get(c.Context, "/api/v1/export")
	if err != nil {
		return err
	}
	var files []domain.StoredFile
	if err := connection.ParseResponse(resp, &files); err != nil {
		return err
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	path := c.String("file")
	if path == "" {
		_, err = c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "Exported %d documents to %s\n", len(files), path)
	return nil
}

func importAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("export file required (use - for stdin)")
	}

	var r io.Reader = c.App.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var files []domain.StoredFile
	if err := json.NewDecoder(r).Decode(&files); err != nil {
		return fmt.Errorf("parse export file: %w", err)
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	for _, f := range files {
		resp, err := client.Post(c.Context, documentsPath, f)
		if err != nil {
			return err
		}
		var doc documentView
		if err := connection.ParseResponse(resp, &doc); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		fmt.Fprintf(c.App.Writer, "Opened %s as tab %s\n", doc.Name, doc.ID)
	}
	return nil
}
