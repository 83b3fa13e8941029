package thingsctl

import "time"

// Task is a single to-do as read from the Things cache or returned by
// the automation bridge. Project and Area hold resolved names, not
// UUIDs; empty string means unset. Due is the deadline date (midnight,
// local), nil when the task has none.
type Task struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes,omitempty"`
	Status    Status          `json:"status"`
	Due       *time.Time      `json:"dueDate,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Project   string          `json:"project,omitempty"`
	Area      string          `json:"area,omitempty"`
	Checklist []ChecklistItem `json:"checklistItems,omitempty"`
	Created   *time.Time      `json:"creationDate,omitempty"`
	Modified  *time.Time      `json:"modificationDate,omitempty"`
}

type ChecklistItem struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Project struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Notes   string     `json:"notes,omitempty"`
	Status  Status     `json:"status"`
	Area    string     `json:"area,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
	Due     *time.Time `json:"dueDate,omitempty"`
	Created *time.Time `json:"creationDate,omitempty"`
}

type Area struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BatchResult reports the outcome of a batch mutation through the
// bridge.
type BatchResult struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Errors    []BatchError `json:"errors,omitempty"`
}

type BatchError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Task satisfies filter.Record.

func (t *Task) Title() string      { return t.Name }
func (t *Task) NotesText() string  { return t.Notes }
func (t *Task) StatusText() string { return string(t.Status) }
func (t *Task) TagNames() []string { return t.Tags }

func (t *Task) ProjectName() (string, bool) { return t.Project, t.Project != "" }
func (t *Task) AreaName() (string, bool)    { return t.Area, t.Area != "" }

func (t *Task) DueDate() (time.Time, bool) {
	if t.Due == nil {
		return time.Time{}, false
	}
	return *t.Due, true
}

// Project satisfies filter.Record too, so bulk selection and ad-hoc
// queries work over projects. A project has no parent project.

func (p *Project) Title() string      { return p.Name }
func (p *Project) NotesText() string  { return p.Notes }
func (p *Project) StatusText() string { return string(p.Status) }
func (p *Project) TagNames() []string { return p.Tags }

func (p *Project) ProjectName() (string, bool) { return "", false }
func (p *Project) AreaName() (string, bool)    { return p.Area, p.Area != "" }

func (p *Project) DueDate() (time.Time, bool) {
	if p.Due == nil {
		return time.Time{}, false
	}
	return *p.Due, true
}
