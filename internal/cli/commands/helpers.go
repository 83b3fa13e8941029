// Package commands implements the CLI subcommands. Each command owns
// its flag set and returns a process exit code: 0 on success, 1 on
// runtime failure, 2 on usage errors.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/internal/config"
	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/cache"
	"github.com/thingsctl/thingsctl/thingsctl/filter"
)

// openStore resolves the database path (flag, then config, then
// auto-discovery) and opens it read-only.
func openStore(ctx context.Context, g cliopt.GlobalOptions) (*cache.Store, error) {
	path := g.DBPath
	if path == "" {
		if cfg, err := config.Load(); err == nil {
			path = cfg.Database.Path
		}
	}
	if path == "" {
		found, err := cache.FindDatabasePath()
		if err != nil {
			return nil, err
		}
		path = found
	}
	slog.Debug("opening task database", "path", path)
	return cache.Open(ctx, path)
}

func outputFormat(g cliopt.GlobalOptions) cliutil.OutputFormat {
	return cliutil.ParseOutputFormat(g.Format)
}

// filterTasks compiles the query and keeps the matching tasks. An
// empty query keeps everything.
func filterTasks(tasks []thingsctl.Task, query string) ([]thingsctl.Task, error) {
	if query == "" {
		return tasks, nil
	}
	expr, err := filter.Parse(query)
	if err != nil {
		return nil, err
	}
	matched := make([]thingsctl.Task, 0, len(tasks))
	for i := range tasks {
		if filter.Matches(expr, &tasks[i]) {
			matched = append(matched, tasks[i])
		}
	}
	return matched, nil
}

func printErr(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
