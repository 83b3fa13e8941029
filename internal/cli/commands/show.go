package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/thingsctl/bridge"
)

// RunShow brings the application forward on a list name or item ID.
func RunShow(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: thingsctl show <list|id>")
		return 2
	}

	if err := bridge.New().Show(context.Background(), fs.Arg(0)); err != nil {
		printErr(err)
		return 1
	}
	return 0
}
