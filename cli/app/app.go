package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/russellwmy/near-api-go/cli/query"
	"github.com/russellwmy/near-api-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "near-go\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a near-go instance of [cli.App] with query commands and the
// network list.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "near-go"
	ctl.Version = config.Version
	ctl.Usage = "Go client for NEAR JSON-RPC nodes"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, query.NewCommands()...)
	ctl.Commands = append(ctl.Commands, cli.Command{
		Name:   "networks",
		Usage:  "List well-known networks and their public RPC endpoints",
		Action: listNetworks,
	})
	return ctl
}

func listNetworks(ctx *cli.Context) error {
	for _, n := range config.Networks() {
		e, err := config.Endpoint(n)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		_, _ = fmt.Fprintf(ctx.App.Writer, "%-10s %s\n", n, e)
	}
	return nil
}
