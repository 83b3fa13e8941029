// Package bulk applies one mutation to every task matching a filter
// query, using the bridge's batch calls so a whole run costs a single
// automation round trip.
package bulk

import (
	"context"
	"fmt"
	"strings"

	"github.com/thingsctl/thingsctl/thingsctl"
	"github.com/thingsctl/thingsctl/thingsctl/filter"
)

// ActionKind selects the mutation a bulk operation performs.
type ActionKind int

const (
	ActionComplete ActionKind = iota
	ActionCancel
	ActionDelete
	ActionTag
	ActionMove
	ActionSetDue
	ActionClearDue
)

// Action is a mutation plus its parameters.
type Action struct {
	Kind    ActionKind
	Tags    []string // ActionTag
	Project string   // ActionMove
	DueDate string   // ActionSetDue, ISO date
}

// Describe renders the action for confirmation prompts and dry runs.
func (a Action) Describe() string {
	switch a.Kind {
	case ActionComplete:
		return "complete"
	case ActionCancel:
		return "cancel"
	case ActionDelete:
		return "delete"
	case ActionTag:
		return "tag with " + strings.Join(a.Tags, ", ")
	case ActionMove:
		return fmt.Sprintf("move to project %q", a.Project)
	case ActionSetDue:
		return "set due date to " + a.DueDate
	case ActionClearDue:
		return "clear due date"
	}
	return "unknown"
}

// Operation is a compiled bulk command: which tasks, what to do, and
// whether to only report.
type Operation struct {
	Expr   filter.Expr // nil selects every task
	Action Action
	DryRun bool
}

// NewOperation compiles the filter query up front so a bad query
// fails before anything runs.
func NewOperation(query string, action Action, dryRun bool) (Operation, error) {
	expr, err := filter.Parse(query)
	if err != nil {
		return Operation{}, err
	}
	return Operation{Expr: expr, Action: action, DryRun: dryRun}, nil
}

// All selects every task.
func All(action Action, dryRun bool) Operation {
	return Operation{Action: action, DryRun: dryRun}
}

// Result is the outcome for one task.
type Result struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Summary is the outcome of a whole bulk run.
type Summary struct {
	Matched   int      `json:"matched"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
	DryRun    bool     `json:"dryRun"`
	Action    string   `json:"action"`
}

func (s *Summary) addSuccess(id, name string) {
	s.Succeeded++
	s.Results = append(s.Results, Result{ID: id, Name: name, Success: true})
}

func (s *Summary) addFailure(id, name, errMsg string) {
	s.Failed++
	s.Results = append(s.Results, Result{ID: id, Name: name, Error: errMsg})
}

// Batcher is the slice of the bridge client bulk needs.
type Batcher interface {
	CompleteBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error)
	CancelBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error)
	DeleteBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error)
	AddTagsBatch(ctx context.Context, ids, tags []string) (thingsctl.BatchResult, error)
	MoveBatch(ctx context.Context, ids []string, project string) (thingsctl.BatchResult, error)
	SetDueBatch(ctx context.Context, ids []string, isoDate string) (thingsctl.BatchResult, error)
	ClearDueBatch(ctx context.Context, ids []string) (thingsctl.BatchResult, error)
}

// Select returns the tasks the operation's filter matches.
func (op Operation) Select(tasks []thingsctl.Task) []thingsctl.Task {
	if op.Expr == nil {
		return tasks
	}
	var matched []thingsctl.Task
	for i := range tasks {
		if filter.Matches(op.Expr, &tasks[i]) {
			matched = append(matched, tasks[i])
		}
	}
	return matched
}

// Execute runs the operation over the candidate tasks. A dry run
// reports every match as a success without touching the bridge.
func Execute(ctx context.Context, client Batcher, tasks []thingsctl.Task, op Operation) (Summary, error) {
	matched := op.Select(tasks)

	summary := Summary{
		Matched: len(matched),
		DryRun:  op.DryRun,
		Action:  op.Action.Describe(),
	}

	if op.DryRun {
		for _, t := range matched {
			summary.addSuccess(t.ID, t.Name)
		}
		return summary, nil
	}

	ids := make([]string, len(matched))
	names := make(map[string]string, len(matched))
	for i, t := range matched {
		ids[i] = t.ID
		names[t.ID] = t.Name
	}

	var batch thingsctl.BatchResult
	var err error
	switch op.Action.Kind {
	case ActionComplete:
		batch, err = client.CompleteBatch(ctx, ids)
	case ActionCancel:
		batch, err = client.CancelBatch(ctx, ids)
	case ActionDelete:
		batch, err = client.DeleteBatch(ctx, ids)
	case ActionTag:
		batch, err = client.AddTagsBatch(ctx, ids, op.Action.Tags)
	case ActionMove:
		batch, err = client.MoveBatch(ctx, ids, op.Action.Project)
	case ActionSetDue:
		batch, err = client.SetDueBatch(ctx, ids, op.Action.DueDate)
	case ActionClearDue:
		batch, err = client.ClearDueBatch(ctx, ids)
	default:
		return Summary{}, thingsctl.New(thingsctl.ErrBulk, "unknown bulk action")
	}
	if err != nil {
		return Summary{}, thingsctl.Wrap(thingsctl.ErrBulk, "bulk operation failed", err)
	}

	failures := make(map[string]string, len(batch.Errors))
	for _, e := range batch.Errors {
		failures[e.ID] = e.Error
	}
	for _, id := range ids {
		if msg, failed := failures[id]; failed {
			summary.addFailure(id, names[id], msg)
		} else {
			summary.addSuccess(id, names[id])
		}
	}

	return summary, nil
}
