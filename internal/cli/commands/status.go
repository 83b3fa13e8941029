package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/bridge"
)

// RunStatus completes, cancels, or deletes the tasks named by ID.
// Several IDs go through one batch script so the run costs a single
// automation round trip.
func RunStatus(g cliopt.GlobalOptions, verb string, argv []string) int {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	ids := fs.Args()
	if len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "usage: thingsctl %s <id>...\n", verb)
		return 2
	}

	ctx := context.Background()
	client := bridge.New()

	var result thingsctl.BatchResult
	var err error
	switch verb {
	case "complete":
		result, err = client.CompleteBatch(ctx, ids)
	case "cancel":
		result, err = client.CancelBatch(ctx, ids)
	case "delete":
		result, err = client.DeleteBatch(ctx, ids)
	}
	if err != nil {
		printErr(err)
		return 1
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, result)
	default:
		fmt.Printf("%d succeeded, %d failed\n", result.Succeeded, result.Failed)
		for _, e := range result.Errors {
			fmt.Printf("  %s: %s\n", e.ID, e.Error)
		}
	}
	if result.Failed > 0 {
		return 1
	}
	return 0
}
