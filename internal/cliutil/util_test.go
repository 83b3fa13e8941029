package cliutil

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/bulk"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestParseOutputFormat(t *testing.T) {
	if got := ParseOutputFormat("json"); got != FormatJSON {
		t.Errorf("json: got %q", got)
	}
	if got := ParseOutputFormat("pretty"); got != FormatPretty {
		t.Errorf("pretty: got %q", got)
	}
	if got := ParseOutputFormat("nonsense"); got != FormatPretty {
		t.Errorf("unknown formats should fall back to pretty, got %q", got)
	}
}

func TestPrintTasks(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	tasks := []thingsctl.Task{
		{ID: "a", Name: "Review PR", Status: thingsctl.StatusOpen, Project: "Website", Tags: []string{"work"}},
		{ID: "b", Name: "File taxes", Status: thingsctl.StatusCompleted, Due: &due},
	}

	var sb strings.Builder
	PrintTasks(&sb, tasks)
	out := sb.String()

	for _, want := range []string{
		"○ Review PR [Website] #work",
		"✓ File taxes due 2026-03-15",
		"2 item(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTasksEmpty(t *testing.T) {
	var sb strings.Builder
	PrintTasks(&sb, nil)
	if !strings.Contains(sb.String(), "No items.") {
		t.Errorf("got %q", sb.String())
	}
}

func TestPrintTaskDetail(t *testing.T) {
	task := thingsctl.Task{
		ID:     "t-1",
		Name:   "Plan offsite",
		Status: thingsctl.StatusOpen,
		Area:   "Work",
		Notes:  "book venue\ninvite team",
		Checklist: []thingsctl.ChecklistItem{
			{Name: "venue", Completed: true},
			{Name: "invites"},
		},
	}

	var sb strings.Builder
	PrintTaskDetail(&sb, task)
	out := sb.String()

	for _, want := range []string{"Plan offsite", "id: t-1", "area: Work", "book venue", "✓ venue", "○ invites"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	s := bulk.Summary{
		Matched:   2,
		Succeeded: 1,
		Failed:    1,
		Action:    "complete",
		Results: []bulk.Result{
			{ID: "a", Name: "Water plants", Success: true},
			{ID: "b", Name: "Call dentist", Error: "not found"},
		},
	}

	var sb strings.Builder
	PrintSummary(&sb, s)
	out := sb.String()

	if !strings.Contains(out, `Applied "complete" to 2 task(s): 1 succeeded, 1 failed`) {
		t.Errorf("summary line wrong:\n%s", out)
	}
	if !strings.Contains(out, "✗ Call dentist: not found") {
		t.Errorf("failure line missing:\n%s", out)
	}

	s.DryRun = true
	sb.Reset()
	PrintSummary(&sb, s)
	if !strings.Contains(sb.String(), "Would apply") {
		t.Errorf("dry run should say Would apply:\n%s", sb.String())
	}
}
