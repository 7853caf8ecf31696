package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/cli/connection"
	"github.com/yndnr/snipboard/internal/core/domain"
)

const documentsPath = "/api/v1/documents"

// DocumentCommand returns the doc subcommand group.
func DocumentCommand() *cli.Command {
	return &cli.Command{
		Name:    "doc",
		Aliases: []string{"docs", "tab"},
		Usage:   "Manage open documents (tabs)",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List open tabs in order",
				Action:  docList,
			},
			{
				Name:      "show",
				Usage:     "Show a document's snippets",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "raw", Usage: "print the document content instead"},
				},
				Action: docShow,
			},
			{
				Name:      "upload",
				Aliases:   []string{"open"},
				Usage:     "Open local text files as new tabs",
				ArgsUsage: "FILE...",
				Action:    docUpload,
			},
			{
				Name:      "close",
				Aliases:   []string{"rm"},
				Usage:     "Close a tab",
				ArgsUsage: "ID",
				Action:    docClose,
			},
			{
				Name:      "activate",
				Aliases:   []string{"use"},
				Usage:     "Make a tab the active one",
				ArgsUsage: "ID",
				Action:    docActivate,
			},
			{
				Name:      "reorder",
				Usage:     "Set the tab order; every open tab must be listed once",
				ArgsUsage: "ID...",
				Action:    docReorder,
			},
			{
				Name:      "snippet",
				Usage:     "Print one command, for piping or copying",
				ArgsUsage: "ID INDEX",
				Action:    docSnippet,
			},
		},
	}
}

func docList(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Get(c.Context, documentsPath)
	if err != nil {
		return err
	}
	var list tabList
	if err := connection.ParseResponse(resp, &list); err != nil {
		return err
	}

	if tableOutput(c) && len(list.Documents) == 0 {
		fmt.Fprintln(c.App.Writer, "No open documents.")
		return nil
	}
	return render(c, list)
}

func docShow(c *cli.Context) error {
	id, err := documentArg(c, 0)
	if err != nil {
		return err
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Get(c.Context, documentsPath+"/"+id.String())
	if err != nil {
		return err
	}
	var doc documentView
	if err := connection.ParseResponse(resp, &doc); err != nil {
		return err
	}

	if c.Bool("raw") {
		fmt.Fprint(c.App.Writer, doc.Content)
		return nil
	}
	if tableOutput(c) {
		active := ""
		if doc.Active {
			active = " (active)"
		}
		fmt.Fprintf(c.App.Writer, "%s [%s]%s\n\n", doc.Name, doc.ID, active)
	}
	return render(c, doc)
}

func docUpload(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file required")
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	var opened []documentView
	for _, path := range c.Args().Slice() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		resp, err := client.Upload(c.Context, documentsPath, filepath.Base(path), f)
		f.Close()
		if err != nil {
			return err
		}

		var doc documentView
		if err := connection.ParseResponse(resp, &doc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if tableOutput(c) {
			fmt.Fprintf(c.App.Writer, "Opened %s as tab %s (%d snippets)\n", doc.Name, doc.ID, len(doc.Snippets))
		}
		opened = append(opened, doc)
	}

	if tableOutput(c) {
		return nil
	}
	return render(c, opened)
}

func docClose(c *cli.Context) error {
	id, err := documentArg(c, 0)
	if err != nil {
		return err
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Delete(c.Context, documentsPath+"/"+id.String())
	if err != nil {
		return err
	}
	var active activeView
	if err := connection.ParseResponse(resp, &active); err != nil {
		return err
	}

	if !tableOutput(c) {
		return render(c, active)
	}
	if active.ActiveID == 0 {
		fmt.Fprintf(c.App.Writer, "Closed tab %s. No tabs remain open.\n", id)
	} else {
		fmt.Fprintf(c.App.Writer, "Closed tab %s. Active tab is now %s.\n", id, active.ActiveID)
	}
	return nil
}

func docActivate(c *cli.Context) error {
	id, err := documentArg(c, 0)
	if err != nil {
		return err
	}
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Post(c.Context, documentsPath+"/"+id.String()+"/activate", nil)
	if err != nil {
		return err
	}
	var active activeView
	if err := connection.ParseResponse(resp, &active); err != nil {
		return err
	}

	if !tableOutput(c) {
		return render(c, active)
	}
	fmt.Fprintf(c.App.Writer, "Tab %s is now active.\n", active.ActiveID)
	return nil
}

func docReorder(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("new tab order required")
	}
	order := make([]domain.DocumentID, c.NArg())
	for i := range order {
		id, err := documentArg(c, i)
		if err != nil {
			return err
		}
		order[i] = id
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	resp, err := client.Post(c.Context, documentsPath+"/reorder", map[string]any{"order": order})
	if err != nil {
		return err
	}
	var list tabList
	if err := connection.ParseResponse(resp, &list); err != nil {
		return err
	}
	return render(c, list)
}

func docSnippet(c *cli.Context) error {
	id, err := documentArg(c, 0)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("snippet index required: %q is not a number", c.Args().Get(1))
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	resp, err := client.Get(c.Context, fmt.Sprintf("%s/%s/snippets/%d", documentsPath, id, index))
	if err != nil {
		return err
	}
	command, err := connection.ReadText(resp)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, command)
	return nil
}
