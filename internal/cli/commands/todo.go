package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
)

// RunTodo prints one task in full, checklist included.
func RunTodo(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: thingsctl todo <id>")
		return 2
	}

	ctx := context.Background()
	store, err := openStore(ctx, g)
	if err != nil {
		printErr(err)
		return 1
	}
	defer store.Close()

	task, err := store.Task(ctx, fs.Arg(0))
	if err != nil {
		printErr(err)
		return 1
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, task)
	default:
		cliutil.PrintTaskDetail(os.Stdout, task)
	}
	return 0
}
