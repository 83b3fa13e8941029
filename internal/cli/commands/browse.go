package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
)

// RunProjects lists all active projects. With an argument it shows
// that project's tasks instead.
func RunProjects(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
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

	if fs.NArg() > 0 {
		name := fs.Arg(0)
		id, err := store.ProjectIDByName(ctx, name)
		if err != nil {
			printErr(err)
			return 1
		}
		tasks, err := store.ProjectTasks(ctx, id)
		if err != nil {
			printErr(err)
			return 1
		}
		switch outputFormat(g) {
		case cliutil.FormatJSON:
			cliutil.PrintJSON(os.Stdout, tasks)
		default:
			fmt.Printf("%s\n\n", name)
			cliutil.PrintTasks(os.Stdout, tasks)
		}
		return 0
	}

	projects, err := store.Projects(ctx)
	if err != nil {
		printErr(err)
		return 1
	}
	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, projects)
	default:
		cliutil.PrintProjects(os.Stdout, projects)
	}
	return 0
}

func RunAreas(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("areas", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
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

	areas, err := store.Areas(ctx)
	if err != nil {
		printErr(err)
		return 1
	}
	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, areas)
	default:
		cliutil.PrintAreas(os.Stdout, areas)
	}
	return 0
}

func RunTags(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
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

	tags, err := store.Tags(ctx)
	if err != nil {
		printErr(err)
		return 1
	}
	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, tags)
	default:
		cliutil.PrintTags(os.Stdout, tags)
	}
	return 0
}

func RunStats(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
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

	stats, err := store.Stats(ctx)
	if err != nil {
		printErr(err)
		return 1
	}
	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, stats)
	default:
		cliutil.PrintStats(os.Stdout, stats)
	}
	return 0
}
