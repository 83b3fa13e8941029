package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl/filter"
)

// RunFilter parses a query and shows how it was understood, without
// touching the database. Handy when a --where clause misbehaves.
func RunFilter(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "usage: thingsctl filter <query>")
		return 2
	}

	expr, err := filter.Parse(query)
	if err != nil {
		printErr(err)
		return 1
	}

	if outputFormat(g) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, map[string]any{
			"query": query,
			"plan":  strings.Split(strings.TrimRight(filter.Explain(expr), "\n"), "\n"),
		})
		return 0
	}
	fmt.Print(filter.Explain(expr))
	return 0
}
