package bridge

import (
	"context"
	"strings"
	"testing"

	"github.com/thingsctl/thingsctl/thingsctl"
)

func TestJSString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "'hello'"},
		{"it's", `'it\'s'`},
		{`a\b`, `'a\\b'`},
		{"line1\nline2", `'line1\nline2'`},
		{"tab\there", `'tab\there'`},
		{"cr\rhere", `'cr\rhere'`},
		{"", "''"},
		{`mix'ed\and` + "\nmore", `'mix\'ed\\and\nmore'`},
	}
	for _, tc := range cases {
		if got := jsString(tc.in); got != tc.want {
			t.Errorf("jsString(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestJSStringArray(t *testing.T) {
	got := jsStringArray([]string{"a", "b's"})
	if got != `['a', 'b\'s']` {
		t.Errorf("got %s", got)
	}
	if got := jsStringArray(nil); got != "[]" {
		t.Errorf("empty: got %s", got)
	}
}

// stubClient records scripts instead of launching osascript.
func stubClient(output string) (*Client, *[]string) {
	var scripts []string
	c := &Client{run: func(_ context.Context, script string) ([]byte, error) {
		scripts = append(scripts, script)
		return []byte(output), nil
	}}
	return c, &scripts
}

func TestAddBuildsScript(t *testing.T) {
	c, scripts := stubClient(`{"id": "ABC", "name": "Buy milk"}`)
	created, err := c.Add(context.Background(), NewTask{
		Title:     "Buy milk",
		Notes:     "the good kind",
		DueDate:   "2026-03-13",
		Tags:      []string{"errands", "home"},
		List:      "Today",
		Checklist: []string{"check fridge"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "ABC" || created.Name != "Buy milk" {
		t.Errorf("unexpected result %+v", created)
	}

	script := (*scripts)[0]
	for _, want := range []string{
		"props.notes = 'the good kind'",
		"props.dueDate = new Date('2026-03-13')",
		"props.tagNames = 'errands, home'",
		"Things.lists.byName('Today')",
		"'check fridge'",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestAddOmitsUnsetProperties(t *testing.T) {
	c, scripts := stubClient(`{"id": "X", "name": "n"}`)
	if _, err := c.Add(context.Background(), NewTask{Title: "n"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	script := (*scripts)[0]
	for _, unwanted := range []string{"props.notes", "props.dueDate", "props.tagNames", "checklistItems"} {
		if strings.Contains(script, unwanted) {
			t.Errorf("script should not contain %q:\n%s", unwanted, script)
		}
	}
}

func TestAddProjectBuildsScript(t *testing.T) {
	c, scripts := stubClient(`{"id": "P1", "name": "Q2 Launch"}`)
	created, err := c.AddProject(context.Background(), NewProject{
		Title: "Q2 Launch",
		Notes: "ship it",
		Area:  "Work",
		Tags:  []string{"launch"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "P1" {
		t.Errorf("unexpected result %+v", created)
	}

	script := (*scripts)[0]
	for _, want := range []string{
		"new: 'project'",
		"props.notes = 'ship it'",
		"props.tagNames = 'launch'",
		"Things.areas.byName('Work')",
		"project.area = targetArea",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestCompleteEscapesID(t *testing.T) {
	c, scripts := stubClient("")
	if err := c.Complete(context.Background(), "task'id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains((*scripts)[0], `byId('task\'id')`) {
		t.Errorf("id not escaped:\n%s", (*scripts)[0])
	}
	if !strings.Contains((*scripts)[0], "todo.status = 'completed'") {
		t.Errorf("missing status assignment:\n%s", (*scripts)[0])
	}
}

func TestBatchResultDecoding(t *testing.T) {
	c, scripts := stubClient(`{"succeeded": 2, "failed": 1, "errors": [{"id": "Z", "error": "Not found"}]}`)
	result, err := c.CompleteBatch(context.Background(), []string{"X", "Y", "Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0].ID != "Z" {
		t.Errorf("unexpected errors %+v", result.Errors)
	}
	if !strings.Contains((*scripts)[0], `['X', 'Y', 'Z']`) {
		t.Errorf("ids not inlined:\n%s", (*scripts)[0])
	}
}

func TestBatchEmptyIDsSkipsAutomation(t *testing.T) {
	c, scripts := stubClient("")
	result, err := c.CancelBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 0 || result.Failed != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if len(*scripts) != 0 {
		t.Error("expected no script execution for empty batch")
	}
}

func TestMalformedOutput(t *testing.T) {
	c, _ := stubClient("not json")
	_, err := c.CompleteBatch(context.Background(), []string{"X"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !thingsctl.IsKind(err, thingsctl.ErrBridge) {
		t.Errorf("expected bridge error, got %v", err)
	}
}

func TestShowUsesListNameForViews(t *testing.T) {
	c, scripts := stubClient("")
	if err := c.Show(context.Background(), "logbook"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains((*scripts)[0], "Things.lists.byName('Logbook')") {
		t.Errorf("expected list lookup:\n%s", (*scripts)[0])
	}
}
