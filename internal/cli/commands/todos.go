package commands

import (
	"context"
	"flag"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl"
)

// RunTodos lists every task, optionally filtered with a query. Open
// tasks only unless --all is given.
func RunTodos(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where, project string
	var all bool
	fs.StringVar(&where, "where", "", "filter query")
	fs.StringVar(&where, "w", "", "filter query")
	fs.StringVar(&project, "project", "", "only tasks in this project")
	fs.BoolVar(&all, "all", false, "include completed and canceled tasks")
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

	var tasks []thingsctl.Task
	if project != "" {
		id, err := store.ProjectIDByName(ctx, project)
		if err != nil {
			printErr(err)
			return 1
		}
		tasks, err = store.ProjectTasks(ctx, id)
		if err != nil {
			printErr(err)
			return 1
		}
	} else {
		tasks, err = store.AllTasks(ctx)
		if err != nil {
			printErr(err)
			return 1
		}
	}

	if !all {
		open := tasks[:0]
		for _, t := range tasks {
			if t.Status == thingsctl.StatusOpen {
				open = append(open, t)
			}
		}
		tasks = open
	}

	tasks, err = filterTasks(tasks, where)
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
