package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/cli/connection"
	"github.com/yndnr/snipboard/internal/infra/buildinfo"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Server health and version",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show liveness, readiness and version in one view",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server liveness",
				Action: systemHealth,
			},
			{
				Name:   "version",
				Usage:  "Show client and server versions",
				Action: systemVersion,
			},
		},
	}
}

type probeView struct {
	Status        string `json:"status"`
	Time          string `json:"time,omitempty"`
	LastSaveError string `json:"last_save_error,omitempty"`
}

type statusView struct {
	Server        string         `json:"server"`
	Health        string         `json:"health"`
	Ready         string         `json:"ready"`
	LastSaveError string         `json:"last_save_error,omitempty" table:"LAST SAVE ERROR"`
	Version       buildinfo.Info `json:"version"`
}

func probe(c *cli.Context, client *connection.Client, path string) (probeView, error) {
	var view probeView
	resp, err := client.Get(c.Context, path)
	if err != nil {
		return view, err
	}
	err = connection.ParseResponse(resp, &view)
	return view, err
}

func systemStatus(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	status := statusView{Server: client.BaseURL()}

	health, err := probe(c, client, "/health")
	if err != nil {
		return err
	}
	status.Health = health.Status

	ready, err := probe(c, client, "/ready")
	var apiErr *connection.APIError
	switch {
	case errors.As(err, &apiErr):
		status.Ready = "not ready: " + apiErr.Details
	case err != nil:
		return err
	default:
		status.Ready = ready.Status
		status.LastSaveError = ready.LastSaveError
	}

	resp, err := client.Get(c.Context, "/api/v1/version")
	if err != nil {
		return err
	}
	if err := connection.ParseResponse(resp, &status.Version); err != nil {
		return err
	}
	return render(c, status)
}

func systemHealth(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	health, err := probe(c, client, "/health")
	if err != nil {
		return err
	}
	if !tableOutput(c) {
		return render(c, health)
	}
	fmt.Fprintf(c.App.Writer, "Server %s is %s\n", client.BaseURL(), health.Status)
	return nil
}

func systemVersion(c *cli.Context) error {
	versions := map[string]buildinfo.Info{"client": buildinfo.Get()}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	resp, err := client.Get(c.Context, "/api/v1/version")
	if err != nil {
		return err
	}
	var server buildinfo.Info
	if err := connection.ParseResponse(resp, &server); err != nil {
		return err
	}
	versions["server"] = server

	if !tableOutput(c) {
		return render(c, versions)
	}
	fmt.Fprintf(c.App.Writer, "Client: %s (%s, %s)\n", versions["client"].Version, versions["client"].Commit, versions["client"].GoVersion)
	fmt.Fprintf(c.App.Writer, "Server: %s (%s, %s)\n", server.Version, server.Commit, server.GoVersion)
	return nil
}
