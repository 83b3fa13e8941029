// Package bridge drives the task manager application through its
// macOS automation interface. Scripts run via osascript; the cache
// package handles all reads, this package only mutates.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Client executes automation scripts against the running application.
type Client struct {
	// run executes a JavaScript automation snippet and returns its
	// stdout. Swapped out in tests.
	run func(ctx context.Context, script string) ([]byte, error)
}

func New() *Client {
	return &Client{run: runOsascript}
}

func runOsascript(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-l", "JavaScript", "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, thingsctl.BridgeError(msg, err)
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

// execJSON runs a script whose last expression is a JSON string and
// decodes it into out.
func (c *Client) execJSON(ctx context.Context, script string, out any) error {
	raw, err := c.run(ctx, script)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return thingsctl.BridgeError("automation returned malformed output", err)
	}
	return nil
}

func (c *Client) execVoid(ctx context.Context, script string) error {
	_, err := c.run(ctx, script)
	return err
}

// NewTask describes a task to create.
type NewTask struct {
	Title     string
	Notes     string
	DueDate   string // ISO date, empty for none
	Tags      []string
	List      string // target list or project name
	Checklist []string
}

// Created identifies a task the application just made.
type Created struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Add creates a task and returns its assigned ID.
func (c *Client) Add(ctx context.Context, t NewTask) (Created, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "(() => {\n    const Things = Application('Things3');\n")
	fmt.Fprintf(&b, "    const props = { name: %s };\n", jsString(t.Title))
	if t.Notes != "" {
		fmt.Fprintf(&b, "    props.notes = %s;\n", jsString(t.Notes))
	}
	if t.DueDate != "" {
		fmt.Fprintf(&b, "    props.dueDate = new Date(%s);\n", jsString(t.DueDate))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "    props.tagNames = %s;\n", jsString(strings.Join(t.Tags, ", ")))
	}
	b.WriteString("    const todo = Things.make({ new: 'toDo', withProperties: props });\n")
	if t.List != "" {
		fmt.Fprintf(&b, `    const targetList = Things.lists.byName(%s);
    if (targetList.exists()) {
        Things.move(todo, { to: targetList });
    }
`, jsString(t.List))
	}
	if len(t.Checklist) > 0 {
		fmt.Fprintf(&b, `    const checklistItems = %s;
    for (const item of checklistItems) {
        Things.make({ new: 'toDo', withProperties: { name: item }, at: todo });
    }
`, jsStringArray(t.Checklist))
	}
	b.WriteString("    return JSON.stringify({ id: todo.id(), name: todo.name() });\n})()")

	var created Created
	if err := c.execJSON(ctx, b.String(), &created); err != nil {
		return Created{}, err
	}
	return created, nil
}

// NewProject describes a project to create.
type NewProject struct {
	Title   string
	Notes   string
	Area    string
	Tags    []string
	DueDate string // ISO date, empty for none
}

// AddProject creates a project and returns its assigned ID.
func (c *Client) AddProject(ctx context.Context, p NewProject) (Created, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "(() => {\n    const Things = Application('Things3');\n")
	fmt.Fprintf(&b, "    const props = { name: %s };\n", jsString(p.Title))
	if p.Notes != "" {
		fmt.Fprintf(&b, "    props.notes = %s;\n", jsString(p.Notes))
	}
	if p.DueDate != "" {
		fmt.Fprintf(&b, "    props.dueDate = new Date(%s);\n", jsString(p.DueDate))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "    props.tagNames = %s;\n", jsString(strings.Join(p.Tags, ", ")))
	}
	b.WriteString("    const project = Things.make({ new: 'project', withProperties: props });\n")
	if p.Area != "" {
		fmt.Fprintf(&b, `    const targetArea = Things.areas.byName(%s);
    if (targetArea.exists()) {
        project.area = targetArea;
    }
`, jsString(p.Area))
	}
	b.WriteString("    return JSON.stringify({ id: project.id(), name: project.name() });\n})()")

	var created Created
	if err := c.execJSON(ctx, b.String(), &created); err != nil {
		return Created{}, err
	}
	return created, nil
}

// Complete marks a task completed.
func (c *Client) Complete(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, "completed")
}

// Cancel marks a task canceled.
func (c *Client) Cancel(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, "canceled")
}

// Delete cancels a task. The automation interface cannot move items
// to the trash, so cancellation is the closest available operation.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.Cancel(ctx, id)
}

func (c *Client) setStatus(ctx context.Context, id, status string) error {
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const todo = Things.toDos.byId(%s);
    if (!todo.exists()) throw new Error("Can't get todo");
    todo.status = %s;
})()`, jsString(id), jsString(status))
	return c.execVoid(ctx, script)
}

// AddTags appends tags to a task, keeping the existing ones.
func (c *Client) AddTags(ctx context.Context, id string, tags []string) error {
	joined := jsString(strings.Join(tags, ", "))
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const todo = Things.toDos.byId(%s);
    if (!todo.exists()) throw new Error("Can't get todo");
    const currentTags = todo.tagNames() || '';
    todo.tagNames = currentTags ? currentTags + ', ' + %s : %s;
})()`, jsString(id), joined, joined)
	return c.execVoid(ctx, script)
}

// MoveToList moves a task into a built-in list or a named project.
func (c *Client) MoveToList(ctx context.Context, id, list string) error {
	name := jsString(list)
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const todo = Things.toDos.byId(%s);
    if (!todo.exists()) throw new Error("Can't get todo");
    const targetList = Things.lists.byName(%s);
    if (targetList.exists()) {
        Things.move(todo, { to: targetList });
    } else {
        const targetProject = Things.projects.whose({ name: %s })[0];
        if (!targetProject) throw new Error("Can't find list or project");
        Things.move(todo, { to: targetProject });
    }
})()`, jsString(id), name, name)
	return c.execVoid(ctx, script)
}

// SetDue sets a task's due date from an ISO date string.
func (c *Client) SetDue(ctx context.Context, id, isoDate string) error {
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const todo = Things.toDos.byId(%s);
    if (!todo.exists()) throw new Error("Can't get todo");
    todo.dueDate = new Date(%s);
})()`, jsString(id), jsString(isoDate))
	return c.execVoid(ctx, script)
}

// ClearDue removes a task's due date.
func (c *Client) ClearDue(ctx context.Context, id string) error {
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const todo = Things.toDos.byId(%s);
    if (!todo.exists()) throw new Error("Can't get todo");
    todo.dueDate = null;
})()`, jsString(id))
	return c.execVoid(ctx, script)
}

// Show brings the application forward on a list view or an item ID.
func (c *Client) Show(ctx context.Context, target string) error {
	if view, ok := thingsctl.ParseListView(target); ok {
		script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    Things.activate();
    Things.show(Things.lists.byName(%s));
})()`, jsString(view.DisplayName()))
		return c.execVoid(ctx, script)
	}

	id := jsString(target)
	script := fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    Things.activate();
    const todo = Things.toDos.byId(%s);
    if (todo.exists()) {
        Things.show(todo);
        return;
    }
    const project = Things.projects.byId(%s);
    if (!project.exists()) throw new Error("Can't get item");
    Things.show(project);
})()`, id, id)
	return c.execVoid(ctx, script)
}

// jsString quotes a Go string as a single-quoted JavaScript literal.
func jsString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return "'" + r.Replace(s) + "'"
}

func jsStringArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = jsString(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
