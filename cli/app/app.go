package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/bincodec/cli/codec"
	"github.com/nspcc-dev/bincodec/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "bincodec\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a bincodec instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "bincodec"
	ctl.Version = config.Version
	ctl.Usage = "Binary structured data codec tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, codec.NewCommands()...)
	return ctl
}
