package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl/bridge"
	"github.com/thingsctl/thingsctl/thingsctl/dates"
	"github.com/thingsctl/thingsctl/thingsctl/quickadd"
)

// RunAdd creates a task from a natural language description, e.g.
//
//	thingsctl add "buy milk tomorrow #errands for Shopping !high"
func RunAdd(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var project, area, when, deadline string
	var parseOnly bool
	fs.StringVar(&project, "project", "", "target project, overrides the parsed one")
	fs.StringVar(&area, "area", "", "target area, overrides the parsed one")
	fs.StringVar(&when, "when", "", "schedule date, natural language")
	fs.StringVar(&deadline, "deadline", "", "deadline date, natural language")
	fs.BoolVar(&parseOnly, "parse-only", false, "show the parse result without creating anything")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: thingsctl add <text>")
		return 2
	}

	task := quickadd.Parse(text)
	if project != "" {
		task.Project = project
	}
	if area != "" {
		task.Area = area
	}
	if when != "" {
		if r, ok := dates.Parse(when); ok {
			task.When = &r
		}
	}
	if deadline != "" {
		if r, ok := dates.Parse(deadline); ok {
			r.Deadline = true
			task.Deadline = &r
		}
	}

	if parseOnly {
		printParsed(g, task)
		return 0
	}
	if task.Title == "" {
		fmt.Fprintln(os.Stderr, "no task title found")
		return 2
	}

	nt := bridge.NewTask{
		Title:     task.Title,
		Notes:     task.Notes,
		Tags:      task.Tags,
		Checklist: task.Checklist,
	}
	// The automation interface has a single date slot.
	if task.Deadline != nil {
		nt.DueDate = task.Deadline.ISODate()
	} else if task.When != nil {
		nt.DueDate = task.When.ISODate()
	}
	if task.Project != "" {
		nt.List = task.Project
	} else if task.Area != "" {
		nt.List = task.Area
	}

	ctx := context.Background()
	created, err := bridge.New().Add(ctx, nt)
	if err != nil {
		printErr(err)
		return 1
	}

	switch outputFormat(g) {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(os.Stdout, map[string]any{
			"created": true,
			"id":      created.ID,
			"name":    created.Name,
		})
	default:
		fmt.Printf("%s %s (%s)\n", color.GreenString("Created:"), created.Name, created.ID)
		if task.When != nil {
			fmt.Printf("  When: %s\n", task.When.ISODate())
		}
		if task.Deadline != nil {
			fmt.Printf("  Deadline: %s\n", task.Deadline.ISODate())
		}
		if len(task.Tags) > 0 {
			fmt.Printf("  Tags: #%s\n", strings.Join(task.Tags, " #"))
		}
		if task.Project != "" {
			fmt.Printf("  Project: %s\n", task.Project)
		}
		if task.Priority != quickadd.PriorityNone {
			fmt.Printf("  Priority: %s\n", task.Priority)
		}
	}
	return 0
}

func printParsed(g cliopt.GlobalOptions, task quickadd.Task) {
	if outputFormat(g) == cliutil.FormatJSON {
		out := map[string]any{
			"parsed":   true,
			"title":    task.Title,
			"priority": task.Priority.String(),
		}
		if task.When != nil {
			out["when"] = task.When.ISODate()
		}
		if task.Deadline != nil {
			out["deadline"] = task.Deadline.ISODate()
		}
		if len(task.Tags) > 0 {
			out["tags"] = task.Tags
		}
		if task.Project != "" {
			out["project"] = task.Project
		}
		if task.Area != "" {
			out["area"] = task.Area
		}
		if task.Notes != "" {
			out["notes"] = task.Notes
		}
		if len(task.Checklist) > 0 {
			out["checklist"] = task.Checklist
		}
		cliutil.PrintJSON(os.Stdout, out)
		return
	}

	fmt.Printf("Title: %s\n", task.Title)
	if task.When != nil {
		fmt.Printf("When: %s\n", task.When.ISODate())
	}
	if task.Deadline != nil {
		fmt.Printf("Deadline: %s\n", task.Deadline.ISODate())
	}
	if len(task.Tags) > 0 {
		fmt.Printf("Tags: #%s\n", strings.Join(task.Tags, " #"))
	}
	if task.Project != "" {
		fmt.Printf("Project: %s\n", task.Project)
	}
	if task.Area != "" {
		fmt.Printf("Area: %s\n", task.Area)
	}
	if task.Priority != quickadd.PriorityNone {
		fmt.Printf("Priority: %s\n", task.Priority)
	}
	if task.Notes != "" {
		fmt.Printf("Notes: %s\n", task.Notes)
	}
	for _, item := range task.Checklist {
		fmt.Printf("  - %s\n", item)
	}
}
