package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `thingsctl - command-line companion for Things 3

USAGE
  thingsctl [global flags] <command> [args]

GLOBAL FLAGS
  --db <path>        task database (default: auto-discover)
  --format pretty|json
  --no-color

LISTS
  inbox | today | upcoming | anytime | someday | logbook | trash
                     show a built-in list (--where to filter)

COMMANDS
  add <text>         create a task from natural language
  todos              all open tasks (--where to filter)
  todo <id>          one task in full, checklist included
  search <query>     full-text search over titles and notes
  filter <query>     parse a filter query and show the result
  complete <id>...   mark tasks completed
  cancel <id>...     mark tasks canceled
  delete <id>...     cancel tasks (automation cannot trash)
  bulk <action>      apply an action to every matching task
  projects           list projects
  areas              list areas
  tags               list tags
  stats              database summary counts
  template <sub>     save, list, show, delete, apply project templates
  show <target>      open a list or item in the app

Filter queries use a small SQL-like language, e.g.
  thingsctl todos --where "status = open AND tags CONTAINS 'work'"

Run "thingsctl bulk --help" or "thingsctl template --help" for details.`)
}
