package quickadd

import (
	"testing"
	"time"
)

// Wednesday, March 11, 2026.
var anchor = time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

func TestParseSimpleTask(t *testing.T) {
	task := ParseAt("buy milk", anchor)
	if task.Title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", task.Title)
	}
	if len(task.Tags) != 0 || task.When != nil || task.Priority != PriorityNone {
		t.Errorf("expected no extras, got %+v", task)
	}
}

func TestParseEmptyInput(t *testing.T) {
	task := ParseAt("", anchor)
	if task.Title != "" {
		t.Errorf("expected empty title, got %q", task.Title)
	}
	task = ParseAt("   ", anchor)
	if task.Title != "" {
		t.Errorf("expected empty title for whitespace, got %q", task.Title)
	}
}

func TestParseTags(t *testing.T) {
	task := ParseAt("buy milk #errands #shopping-list", anchor)
	if task.Title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", task.Title)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "errands" || task.Tags[1] != "shopping-list" {
		t.Errorf("expected [errands shopping-list], got %v", task.Tags)
	}
}

func TestParseEscapedHash(t *testing.T) {
	task := ParseAt(`fix issue \#42 #bugs`, anchor)
	if task.Title != "fix issue #42" {
		t.Errorf("expected literal hash in title, got %q", task.Title)
	}
	if len(task.Tags) != 1 || task.Tags[0] != "bugs" {
		t.Errorf("expected [bugs], got %v", task.Tags)
	}
}

func TestParseWhenDate(t *testing.T) {
	task := ParseAt("buy milk tomorrow", anchor)
	if task.Title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", task.Title)
	}
	if task.When == nil {
		t.Fatal("expected a when date")
	}
	if got := task.When.ISODate(); got != "2026-03-12" {
		t.Errorf("expected 2026-03-12, got %s", got)
	}
}

func TestParseWhenDateTime(t *testing.T) {
	task := ParseAt("call dentist tomorrow 3pm", anchor)
	if task.Title != "call dentist" {
		t.Errorf("expected title 'call dentist', got %q", task.Title)
	}
	if task.When == nil || !task.When.HasTime || task.When.Time != 15*time.Hour {
		t.Errorf("expected tomorrow 3pm, got %+v", task.When)
	}
}

func TestParseMultiWordDate(t *testing.T) {
	task := ParseAt("review budget in 3 days", anchor)
	if task.Title != "review budget" {
		t.Errorf("expected title 'review budget', got %q", task.Title)
	}
	if task.When == nil {
		t.Fatal("expected a when date")
	}
	if got := task.When.ISODate(); got != "2026-03-14" {
		t.Errorf("expected 2026-03-14, got %s", got)
	}
}

func TestParseDeadline(t *testing.T) {
	task := ParseAt("submit report by friday", anchor)
	if task.Title != "submit report" {
		t.Errorf("expected title 'submit report', got %q", task.Title)
	}
	if task.Deadline == nil {
		t.Fatal("expected a deadline")
	}
	if !task.Deadline.Deadline {
		t.Error("expected deadline flag")
	}
	if got := task.Deadline.ISODate(); got != "2026-03-13" {
		t.Errorf("expected 2026-03-13, got %s", got)
	}
}

func TestParseNonDateByStaysInTitle(t *testing.T) {
	task := ParseAt("stop by pharmacy", anchor)
	if task.Title != "stop by pharmacy" {
		t.Errorf("expected full title, got %q", task.Title)
	}
	if task.Deadline != nil {
		t.Errorf("expected no deadline, got %+v", task.Deadline)
	}
}

func TestParseProject(t *testing.T) {
	task := ParseAt("call mom for Family", anchor)
	if task.Title != "call mom" {
		t.Errorf("expected title 'call mom', got %q", task.Title)
	}
	if task.Project != "Family" {
		t.Errorf("expected project Family, got %q", task.Project)
	}
}

func TestParseArea(t *testing.T) {
	task := ParseAt("file expenses in Work", anchor)
	if task.Title != "file expenses" {
		t.Errorf("expected title 'file expenses', got %q", task.Title)
	}
	if task.Area != "Work" {
		t.Errorf("expected area Work, got %q", task.Area)
	}
}

func TestParseRelativeDateNotArea(t *testing.T) {
	// "in 3 days" is a date, not an area named "3 days".
	task := ParseAt("water plants in 3 days", anchor)
	if task.Area != "" {
		t.Errorf("expected no area, got %q", task.Area)
	}
	if task.When == nil {
		t.Error("expected a when date")
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		input string
		want  Priority
	}{
		{"buy milk !high", PriorityHigh},
		{"buy milk !!!", PriorityHigh},
		{"buy milk !medium", PriorityMedium},
		{"buy milk !!", PriorityMedium},
		{"buy milk !low", PriorityLow},
		{"buy milk !", PriorityLow},
		{"buy milk", PriorityNone},
	}
	for _, tc := range cases {
		task := ParseAt(tc.input, anchor)
		if task.Priority != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.want, task.Priority)
		}
		if task.Title != "buy milk" {
			t.Errorf("%q: expected title 'buy milk', got %q", tc.input, task.Title)
		}
	}
}

func TestParseNotes(t *testing.T) {
	task := ParseAt("buy milk // get the lactose free kind", anchor)
	if task.Title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", task.Title)
	}
	if task.Notes != "get the lactose free kind" {
		t.Errorf("expected notes, got %q", task.Notes)
	}
}

func TestParseChecklist(t *testing.T) {
	task := ParseAt("packing list - passport - charger - socks", anchor)
	if task.Title != "packing list" {
		t.Errorf("expected title 'packing list', got %q", task.Title)
	}
	want := []string{"passport", "charger", "socks"}
	if len(task.Checklist) != len(want) {
		t.Fatalf("expected %d items, got %v", len(want), task.Checklist)
	}
	for i, item := range want {
		if task.Checklist[i] != item {
			t.Errorf("item %d: expected %q, got %q", i, item, task.Checklist[i])
		}
	}
}

func TestParseEverythingAtOnce(t *testing.T) {
	task := ParseAt("buy milk tomorrow 3pm #errands for Shopping !high // check the fridge first", anchor)
	if task.Title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", task.Title)
	}
	if len(task.Tags) != 1 || task.Tags[0] != "errands" {
		t.Errorf("expected [errands], got %v", task.Tags)
	}
	if task.Project != "Shopping" {
		t.Errorf("expected project Shopping, got %q", task.Project)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %v", task.Priority)
	}
	if task.Notes != "check the fridge first" {
		t.Errorf("expected notes, got %q", task.Notes)
	}
	if task.When == nil || !task.When.HasTime {
		t.Fatalf("expected tomorrow 3pm, got %+v", task.When)
	}
	if !task.HasSchedule() {
		t.Error("expected HasSchedule to be true")
	}
}

func TestParsePriorityName(t *testing.T) {
	if p, ok := ParsePriority("High"); !ok || p != PriorityHigh {
		t.Errorf("expected high, got %v %v", p, ok)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Error("expected 'urgent' to be rejected")
	}
}
