package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thingsctl/thingsctl/internal/cli/commands"
	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/thingsctl"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("thingsctl", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}
	if g.NoColor {
		color.NoColor = true
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	if view, ok := thingsctl.ParseListView(verb); ok {
		return commands.RunList(g, view, rest)
	}

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "add":
		return commands.RunAdd(g, rest)
	case "todos":
		return commands.RunTodos(g, rest)
	case "todo":
		return commands.RunTodo(g, rest)
	case "search":
		return commands.RunSearch(g, rest)
	case "filter":
		return commands.RunFilter(g, rest)
	case "complete":
		return commands.RunStatus(g, "complete", rest)
	case "cancel":
		return commands.RunStatus(g, "cancel", rest)
	case "delete":
		return commands.RunStatus(g, "delete", rest)
	case "bulk":
		return commands.RunBulk(g, rest)
	case "projects":
		return commands.RunProjects(g, rest)
	case "areas":
		return commands.RunAreas(g, rest)
	case "tags":
		return commands.RunTags(g, rest)
	case "stats":
		return commands.RunStats(g, rest)
	case "template":
		return commands.RunTemplate(g, rest)
	case "show":
		return commands.RunShow(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
