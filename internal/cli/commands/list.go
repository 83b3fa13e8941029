package commands

import (
	"context"
	"flag"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl"
)

// RunList shows one of the built-in lists, optionally filtered.
func RunList(g cliopt.GlobalOptions, view thingsctl.ListView, argv []string) int {
	fs := flag.NewFlagSet(string(view), flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where string
	var limit int
	fs.StringVar(&where, "where", "", "filter query")
	fs.StringVar(&where, "w", "", "filter query")
	fs.IntVar(&limit, "limit", 0, "cap the number of items shown")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := context.Background()
	store, err := openStore(ctx, g)
	if err != nil {
		printErr(err)
		return 1
	}
	defer store.Close()

	tasks, err := store.List(ctx, view)
	if err != nil {
		printErr(err)
		return 1
	}
	tasks, err = filterTasks(tasks, where)
	if err != nil {
		printErr(err)
		return 1
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, tasks)
	default:
		cliutil.PrintTasks(os.Stdout, tasks)
	}
	return 0
}
