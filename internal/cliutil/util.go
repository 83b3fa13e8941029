// Package cliutil holds output helpers shared by the command router
// and the per-command code.
//
// NOTE: This is a separate package to avoid import cycles between the
// root command router and per-command code.
package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/bulk"
	"github.com/thingsctl/thingsctl/thingsctl/cache"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

var (
	doneColor    = color.New(color.FgGreen)
	openColor    = color.New(color.FgWhite)
	cancelColor  = color.New(color.FgRed)
	titleColor   = color.New(color.Bold)
	tagColor     = color.New(color.FgCyan)
	projectColor = color.New(color.FgBlue)
	dueColor     = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// statusMark renders the checkbox column for a task line.
func statusMark(s thingsctl.Status) string {
	switch s {
	case thingsctl.StatusCompleted:
		return doneColor.Sprint("✓")
	case thingsctl.StatusCanceled:
		return cancelColor.Sprint("✗")
	default:
		return openColor.Sprint("○")
	}
}

// PrintTasks writes one line per task.
func PrintTasks(w io.Writer, tasks []thingsctl.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %s", statusMark(t.Status), titleColor.Sprint(t.Name))
		if t.Project != "" {
			fmt.Fprintf(w, " %s", projectColor.Sprintf("[%s]", t.Project))
		} else if t.Area != "" {
			fmt.Fprintf(w, " %s", projectColor.Sprintf("[%s]", t.Area))
		}
		if t.Due != nil {
			fmt.Fprintf(w, " %s", dueColor.Sprintf("due %s", t.Due.Format("2006-01-02")))
		}
		for _, tag := range t.Tags {
			fmt.Fprintf(w, " %s", tagColor.Sprintf("#%s", tag))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d item(s)\n", len(tasks))
}

// PrintTaskDetail writes the full record for a single task.
func PrintTaskDetail(w io.Writer, t thingsctl.Task) {
	fmt.Fprintf(w, "%s %s\n", statusMark(t.Status), titleColor.Sprint(t.Name))
	fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("id:"), t.ID)
	fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("status:"), t.Status)
	if t.Project != "" {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("project:"), t.Project)
	}
	if t.Area != "" {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("area:"), t.Area)
	}
	if t.Due != nil {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("due:"), t.Due.Format("2006-01-02"))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprint("tags:"), strings.Join(t.Tags, ", "))
	}
	if t.Notes != "" {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("notes:"))
		for _, line := range strings.Split(t.Notes, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	if len(t.Checklist) > 0 {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("checklist:"))
		for _, item := range t.Checklist {
			mark := "○"
			if item.Completed {
				mark = doneColor.Sprint("✓")
			}
			fmt.Fprintf(w, "    %s %s\n", mark, item.Name)
		}
	}
}

// PrintProjects writes one line per project with its task context.
func PrintProjects(w io.Writer, projects []thingsctl.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	for _, p := range projects {
		fmt.Fprintf(w, "%s %s", statusMark(p.Status), titleColor.Sprint(p.Name))
		if p.Area != "" {
			fmt.Fprintf(w, " %s", projectColor.Sprintf("[%s]", p.Area))
		}
		if p.Due != nil {
			fmt.Fprintf(w, " %s", dueColor.Sprintf("due %s", p.Due.Format("2006-01-02")))
		}
		for _, tag := range p.Tags {
			fmt.Fprintf(w, " %s", tagColor.Sprintf("#%s", tag))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d project(s)\n", len(projects))
}

func PrintAreas(w io.Writer, areas []thingsctl.Area) {
	if len(areas) == 0 {
		fmt.Fprintln(w, "No areas.")
		return
	}
	for _, a := range areas {
		fmt.Fprintf(w, "%s", titleColor.Sprint(a.Name))
		for _, tag := range a.Tags {
			fmt.Fprintf(w, " %s", tagColor.Sprintf("#%s", tag))
		}
		fmt.Fprintln(w)
	}
}

func PrintTags(w io.Writer, tags []thingsctl.Tag) {
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags.")
		return
	}
	for _, t := range tags {
		fmt.Fprintln(w, tagColor.Sprintf("#%s", t.Name))
	}
}

func PrintStats(w io.Writer, st cache.Stats) {
	fmt.Fprintln(w, titleColor.Sprint("Lists"))
	fmt.Fprintf(w, "  Inbox:     %d\n", st.Inbox)
	fmt.Fprintf(w, "  Today:     %d\n", st.Today)
	fmt.Fprintf(w, "  Upcoming:  %d\n", st.Upcoming)
	fmt.Fprintf(w, "  Anytime:   %d\n", st.Anytime)
	fmt.Fprintf(w, "  Someday:   %d\n", st.Someday)
	fmt.Fprintln(w, titleColor.Sprint("Totals"))
	fmt.Fprintf(w, "  Projects:  %d\n", st.Projects)
	fmt.Fprintf(w, "  Areas:     %d\n", st.Areas)
	fmt.Fprintf(w, "  Completed (90 days): %d\n", st.Completed)
}

// PrintSummary writes the outcome of a bulk run.
func PrintSummary(w io.Writer, s bulk.Summary) {
	verb := "Applied"
	if s.DryRun {
		verb = "Would apply"
	}
	fmt.Fprintf(w, "%s %q to %d task(s): %d succeeded, %d failed\n",
		verb, s.Action, s.Matched, s.Succeeded, s.Failed)
	for _, r := range s.Results {
		if r.Success {
			fmt.Fprintf(w, "  %s %s\n", doneColor.Sprint("✓"), r.Name)
		} else {
			fmt.Fprintf(w, "  %s %s: %s\n", cancelColor.Sprint("✗"), r.Name, r.Error)
		}
	}
}
