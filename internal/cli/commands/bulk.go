package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/bridge"
	"github.com/thingsctl/thingsctl/thingsctl/bulk"
	"github.com/thingsctl/thingsctl/thingsctl/dates"
)

const bulkUsage = `usage: thingsctl bulk <action> [flags]

ACTIONS
  complete | cancel | delete
  tag       --tags a,b
  move      --project <name>
  due       --date <natural date>
  clear-due

FLAGS
  --where <query>   select tasks with a filter query
  --all             select every open task
  --dry-run         report matches without changing anything`

// RunBulk applies one action to every task a filter query selects.
func RunBulk(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) == 0 || argv[0] == "--help" || argv[0] == "-h" {
		fmt.Fprintln(os.Stderr, bulkUsage)
		if len(argv) == 0 {
			return 2
		}
		return 0
	}
	verb := argv[0]

	fs := flag.NewFlagSet("bulk "+verb, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var where, tags, project, date string
	var all, dryRun bool
	fs.StringVar(&where, "where", "", "filter query")
	fs.StringVar(&where, "w", "", "filter query")
	fs.BoolVar(&all, "all", false, "select every open task")
	fs.BoolVar(&dryRun, "dry-run", false, "report matches without changing anything")
	fs.StringVar(&tags, "tags", "", "comma-separated tags (tag action)")
	fs.StringVar(&project, "project", "", "target project (move action)")
	fs.StringVar(&date, "date", "", "due date, natural language (due action)")
	if err := fs.Parse(argv[1:]); err != nil {
		return 2
	}
	if where == "" && !all {
		fmt.Fprintln(os.Stderr, "bulk needs --where <query> or --all")
		return 2
	}

	action := bulk.Action{}
	switch verb {
	case "complete":
		action.Kind = bulk.ActionComplete
	case "cancel":
		action.Kind = bulk.ActionCancel
	case "delete":
		action.Kind = bulk.ActionDelete
	case "tag":
		if tags == "" {
			fmt.Fprintln(os.Stderr, "bulk tag needs --tags")
			return 2
		}
		action.Kind = bulk.ActionTag
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				action.Tags = append(action.Tags, t)
			}
		}
	case "move":
		if project == "" {
			fmt.Fprintln(os.Stderr, "bulk move needs --project")
			return 2
		}
		action.Kind = bulk.ActionMove
		action.Project = project
	case "due":
		r, ok := dates.Parse(date)
		if !ok {
			fmt.Fprintf(os.Stderr, "could not parse date %q\n", date)
			return 2
		}
		action.Kind = bulk.ActionSetDue
		action.DueDate = r.ISODate()
	case "clear-due":
		action.Kind = bulk.ActionClearDue
	default:
		fmt.Fprintf(os.Stderr, "unknown bulk action: %s\n\n%s\n", verb, bulkUsage)
		return 2
	}

	var op bulk.Operation
	if where != "" {
		var err error
		op, err = bulk.NewOperation(where, action, dryRun)
		if err != nil {
			printErr(err)
			return 2
		}
	} else {
		op = bulk.All(action, dryRun)
	}

	ctx := context.Background()
	store, err := openStore(ctx, g)
	if err != nil {
		printErr(err)
		return 1
	}
	defer store.Close()

	tasks, err := store.AllTasks(ctx)
	if err != nil {
		printErr(err)
		return 1
	}
	if where == "" {
		// --all means every open task, not the whole history.
		open := tasks[:0]
		for _, t := range tasks {
			if t.Status == thingsctl.StatusOpen {
				open = append(open, t)
			}
		}
		tasks = open
	}

	summary, err := bulk.Execute(ctx, bridge.New(), tasks, op)
	if err != nil {
		printErr(err)
		return 1
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, summary)
	default:
		cliutil.PrintSummary(os.Stdout, summary)
	}
	if summary.Failed > 0 {
		return 1
	}
	return 0
}
