package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
)

// RunSearch finds tasks whose title or notes contain the query text.
func RunSearch(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: thingsctl search <text>")
		return 2
	}

	ctx := context.Background()
	store, err := openStore(ctx, g)
	if err != nil {
		printErr(err)
		return 1
	}
	defer store.Close()

	tasks, err := store.Search(ctx, query)
	if err != nil {
		printErr(err)
		return 1
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, tasks)
	default:
		cliutil.PrintTasks(os.Stdout, tasks)
	}
	return 0
}
