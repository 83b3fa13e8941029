// Package template defines reusable project blueprints. A template
// describes a project's headings, tasks, relative dates, and
// {{variable}} placeholders, and can be stamped out into concrete
// tasks ready for the bridge.
package template

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// RelativeDate is a date expressed relative to the day a template is
// applied: "today", "tomorrow", "next_week", or an offset like "+3d",
// "+2w", "-1d".
type RelativeDate string

// Resolve turns the relative date into an absolute one.
func (r RelativeDate) Resolve() time.Time {
	return r.ResolveAt(time.Now())
}

// ResolveAt resolves against an explicit base day. Unparseable input
// resolves to the base day itself.
func (r RelativeDate) ResolveAt(base time.Time) time.Time {
	y, m, d := base.Date()
	base = time.Date(y, m, d, 0, 0, 0, 0, base.Location())

	s := strings.ToLower(strings.TrimSpace(string(r)))
	switch s {
	case "today", "":
		return base
	case "tomorrow":
		return base.AddDate(0, 0, 1)
	case "next_week", "nextweek":
		return base.AddDate(0, 0, 7)
	case "next_month", "nextmonth":
		return base.AddDate(0, 1, 0)
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return base
	}

	offset := s[1:]
	if offset == "" {
		return base
	}
	unit := offset[len(offset)-1]
	n, err := strconv.Atoi(strings.TrimRight(offset, "dwmy"))
	if err != nil {
		n = 1
	}
	n *= sign

	switch unit {
	case 'w':
		return base.AddDate(0, 0, n*7)
	case 'm':
		return base.AddDate(0, n, 0)
	case 'y':
		return base.AddDate(n, 0, 0)
	default:
		return base.AddDate(0, 0, n)
	}
}

// Variable is a named placeholder with an optional default.
type Variable struct {
	Name        string `yaml:"name"`
	Default     string `yaml:"default,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Todo is one task inside a template. Title and notes may contain
// {{variable}} placeholders.
type Todo struct {
	Title     string       `yaml:"title"`
	Notes     string       `yaml:"notes,omitempty"`
	Due       RelativeDate `yaml:"due,omitempty"`
	Tags      []string     `yaml:"tags,omitempty"`
	Checklist []string     `yaml:"checklist,omitempty"`
}

// Heading groups todos into a project section.
type Heading struct {
	Title string `yaml:"title"`
	Todos []Todo `yaml:"todos,omitempty"`
}

// Project is a whole project blueprint.
type Project struct {
	ID          string     `yaml:"id,omitempty"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Notes       string     `yaml:"notes,omitempty"`
	Area        string     `yaml:"area,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty"`
	Todos       []Todo     `yaml:"todos,omitempty"`
	Headings    []Heading  `yaml:"headings,omitempty"`
	Source      string     `yaml:"source_project,omitempty"`
	CreatedAt   time.Time  `yaml:"created_at,omitempty"`
}

// TodoCount counts todos across the project and all headings.
func (p *Project) TodoCount() int {
	n := len(p.Todos)
	for _, h := range p.Headings {
		n += len(h.Todos)
	}
	return n
}

// Substitute replaces {{name}} placeholders in text. Values win over
// variable defaults; placeholders with neither stay as-is.
func (p *Project) Substitute(text string, values map[string]string) string {
	for name, value := range values {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	for _, v := range p.Variables {
		if v.Default != "" {
			text = strings.ReplaceAll(text, "{{"+v.Name+"}}", v.Default)
		}
	}
	return text
}

// MissingVariables lists declared variables that have no value and no
// default, so callers can prompt before applying.
func (p *Project) MissingVariables(values map[string]string) []string {
	var missing []string
	for _, v := range p.Variables {
		if _, ok := values[v.Name]; !ok && v.Default == "" {
			missing = append(missing, v.Name)
		}
	}
	return missing
}

// Instance is a template stamped out with variables substituted and
// relative dates resolved, ready to hand to the bridge.
type Instance struct {
	Name     string
	Notes    string
	Area     string
	Tags     []string
	Todos    []InstanceTodo
	Headings []InstanceHeading
}

type InstanceTodo struct {
	Title     string
	Notes     string
	Due       *time.Time
	Tags      []string
	Checklist []string
}

type InstanceHeading struct {
	Title string
	Todos []InstanceTodo
}

// Instantiate applies variable values and resolves dates relative to
// base. Declared variables without a value or default are an error.
func (p *Project) Instantiate(values map[string]string, base time.Time) (Instance, error) {
	if missing := p.MissingVariables(values); len(missing) > 0 {
		return Instance{}, thingsctl.New(thingsctl.ErrTemplate,
			fmt.Sprintf("missing values for variables: %s", strings.Join(missing, ", ")))
	}

	inst := Instance{
		Name:  p.Substitute(p.Name, values),
		Notes: p.Substitute(p.Notes, values),
		Area:  p.Area,
		Tags:  p.Tags,
	}
	for _, t := range p.Todos {
		inst.Todos = append(inst.Todos, p.instantiateTodo(t, values, base))
	}
	for _, h := range p.Headings {
		ih := InstanceHeading{Title: p.Substitute(h.Title, values)}
		for _, t := range h.Todos {
			ih.Todos = append(ih.Todos, p.instantiateTodo(t, values, base))
		}
		inst.Headings = append(inst.Headings, ih)
	}
	return inst, nil
}

func (p *Project) instantiateTodo(t Todo, values map[string]string, base time.Time) InstanceTodo {
	out := InstanceTodo{
		Title:     p.Substitute(t.Title, values),
		Notes:     p.Substitute(t.Notes, values),
		Tags:      t.Tags,
		Checklist: t.Checklist,
	}
	if t.Due != "" {
		due := t.Due.ResolveAt(base)
		out.Due = &due
	}
	return out
}
