package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// batchScript wraps a per-task statement in a loop that tallies
// successes and failures, so one slow osascript launch covers the
// whole batch.
func batchScript(ids []string, body string) string {
	return fmt.Sprintf(`(() => {
    const Things = Application('Things3');
    const ids = %s;
    let succeeded = 0;
    let failed = 0;
    const errors = [];
    for (const id of ids) {
        try {
            const todo = Things.toDos.byId(id);
            if (todo.exists()) {
                %s
                succeeded++;
            } else {
                failed++;
                errors.push({ id: id, error: 'Not found' });
            }
        } catch (e) {
            failed++;
            errors.push({ id: id, error: e.message });
        }
    }
    return JSON.stringify({ succeeded, failed, errors });
})()`, jsStringArray(ids), body)
}

func (c *Client) runBatch(ctx context.Context, ids []string, body string) (thingsctl.BatchResult, error) {
	if len(ids) == 0 {
		return thingsctl.BatchResult{}, nil
	}
	var result thingsctl.BatchResult
	if err := c.execJSON(ctx, batchScript(ids, body), &result); err != nil {
		return thingsctl.BatchResult{}, err
	}
	return result, nil
}

// CompleteBatch marks the given tasks completed in one automation call.
func (c *Client) CompleteBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error) {
	return c.runBatch(ctx, ids, "todo.status = 'completed';")
}

// CancelBatch marks the given tasks canceled.
func (c *Client) CancelBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error) {
	return c.runBatch(ctx, ids, "todo.status = 'canceled';")
}

// DeleteBatch cancels the given tasks; see Delete.
func (c *Client) DeleteBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error) {
	return c.CancelBatch(ctx, ids)
}

// AddTagsBatch appends tags to each of the given tasks.
func (c *Client) AddTagsBatch(ctx context.Context, ids, tags []string) (thingsctl.BatchResult, error) {
	joined := jsString(strings.Join(tags, ", "))
	body := fmt.Sprintf(`const currentTags = todo.tagNames() || '';
                todo.tagNames = currentTags ? currentTags + ', ' + %s : %s;`, joined, joined)
	return c.runBatch(ctx, ids, body)
}

// MoveBatch moves the given tasks into a named project.
func (c *Client) MoveBatch(ctx context.Context, ids []string, project string) (thingsctl.BatchResult, error) {
	body := fmt.Sprintf(`const target = Things.projects.whose({ name: %s })[0];
                if (!target) throw new Error("Can't find project");
                Things.move(todo, { to: target });`, jsString(project))
	return c.runBatch(ctx, ids, body)
}

// SetDueBatch sets the due date on each of the given tasks.
func (c *Client) SetDueBatch(ctx context.Context, ids []string, isoDate string) (thingsctl.BatchResult, error) {
	body := fmt.Sprintf("todo.dueDate = new Date(%s);", jsString(isoDate))
	return c.runBatch(ctx, ids, body)
}

// ClearDueBatch removes the due date from each of the given tasks.
func (c *Client) ClearDueBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error) {
	return c.runBatch(ctx, ids, "todo.dueDate = null;")
}
