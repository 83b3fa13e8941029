package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thingsctl/thingsctl/internal/cliopt"
	"github.com/thingsctl/thingsctl/internal/cliutil"
	"github.com/thingsctl/thingsctl/thingsctl/bridge"
	"github.com/thingsctl/thingsctl/thingsctl/template"
)

const templateUsage = `usage: thingsctl template <subcommand>

SUBCOMMANDS
  list                       saved templates
  show <name>                print a template as YAML
  save --file <yaml>         store a template definition
  delete <name>              remove a saved template
  apply <name> [--var k=v]   create a project from a template`

// varFlags collects repeated --var key=value flags.
type varFlags map[string]string

func (v varFlags) String() string { return "" }

func (v varFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[key] = value
	return nil
}

// RunTemplate routes the template subcommands.
func RunTemplate(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) == 0 || argv[0] == "--help" || argv[0] == "-h" {
		fmt.Fprintln(os.Stderr, templateUsage)
		if len(argv) == 0 {
			return 2
		}
		return 0
	}
	verb := argv[0]
	rest := argv[1:]

	storage, err := template.NewStorage()
	if err != nil {
		printErr(err)
		return 1
	}

	switch verb {
	case "list":
		return runTemplateList(g, storage)
	case "show":
		return runTemplateShow(g, storage, rest)
	case "save":
		return runTemplateSave(storage, rest)
	case "delete":
		return runTemplateDelete(storage, rest)
	case "apply":
		return runTemplateApply(g, storage, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown template subcommand: %s\n\n%s\n", verb, templateUsage)
		return 2
	}
}

func runTemplateList(g cliopt.GlobalOptions, storage *template.Storage) int {
	templates, err := storage.List()
	if err != nil {
		printErr(err)
		return 1
	}
	if outputFormat(g) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, templates)
		return 0
	}
	if len(templates) == 0 {
		fmt.Println("No templates.")
		return 0
	}
	for _, t := range templates {
		fmt.Printf("%s (%d todos)", t.Name, t.TodoCount())
		if t.Description != "" {
			fmt.Printf(": %s", t.Description)
		}
		fmt.Println()
	}
	return 0
}

func runTemplateShow(g cliopt.GlobalOptions, storage *template.Storage, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: thingsctl template show <name>")
		return 2
	}
	t, err := storage.Load(argv[0])
	if err != nil {
		printErr(err)
		return 1
	}
	if outputFormat(g) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, t)
		return 0
	}
	out, err := yaml.Marshal(t)
	if err != nil {
		printErr(err)
		return 1
	}
	os.Stdout.Write(out)
	return 0
}

func runTemplateSave(storage *template.Storage, argv []string) int {
	fs := flag.NewFlagSet("template save", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var file, name string
	fs.StringVar(&file, "file", "", "YAML template definition to store")
	fs.StringVar(&name, "name", "", "store under this name instead of the one in the file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "template save needs --file")
		return 2
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		printErr(err)
		return 1
	}
	var t template.Project
	if err := yaml.Unmarshal(raw, &t); err != nil {
		printErr(err)
		return 1
	}
	if name != "" {
		t.Name = name
	}
	if t.Name == "" {
		fmt.Fprintln(os.Stderr, "template has no name; set one in the file or pass --name")
		return 2
	}
	if err := storage.Save(&t); err != nil {
		printErr(err)
		return 1
	}
	fmt.Printf("Saved template %q with %d todos\n", t.Name, t.TodoCount())
	return 0
}

func runTemplateDelete(storage *template.Storage, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: thingsctl template delete <name>")
		return 2
	}
	if err := storage.Delete(argv[0]); err != nil {
		printErr(err)
		return 1
	}
	fmt.Printf("Deleted template %q\n", argv[0])
	return 0
}

func runTemplateApply(g cliopt.GlobalOptions, storage *template.Storage, argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "usage: thingsctl template apply <name> [--var k=v] [--dry-run]")
		return 2
	}
	name := argv[0]

	fs := flag.NewFlagSet("template apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	vars := varFlags{}
	var dryRun bool
	fs.Var(vars, "var", "variable value as key=value, repeatable")
	fs.BoolVar(&dryRun, "dry-run", false, "show what would be created")
	if err := fs.Parse(argv[1:]); err != nil {
		return 2
	}

	t, err := storage.Load(name)
	if err != nil {
		printErr(err)
		return 1
	}
	inst, err := t.Instantiate(vars, time.Now())
	if err != nil {
		printErr(err)
		return 1
	}

	if dryRun {
		if outputFormat(g) == cliutil.FormatJSON {
			cliutil.PrintJSON(os.Stdout, inst)
			return 0
		}
		fmt.Printf("Would create project %q\n", inst.Name)
		for _, todo := range flattenTodos(inst) {
			fmt.Printf("  - %s\n", todo.Title)
		}
		return 0
	}

	ctx := context.Background()
	client := bridge.New()
	created, err := client.AddProject(ctx, bridge.NewProject{
		Title: inst.Name,
		Notes: inst.Notes,
		Area:  inst.Area,
		Tags:  inst.Tags,
	})
	if err != nil {
		printErr(err)
		return 1
	}

	todos := flattenTodos(inst)
	for _, todo := range todos {
		nt := bridge.NewTask{
			Title:     todo.Title,
			Notes:     todo.Notes,
			Tags:      todo.Tags,
			List:      inst.Name,
			Checklist: todo.Checklist,
		}
		if todo.Due != nil {
			nt.DueDate = todo.Due.Format("2006-01-02")
		}
		if _, err := client.Add(ctx, nt); err != nil {
			printErr(err)
			return 1
		}
	}

	if outputFormat(g) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, map[string]any{
			"created": true,
			"id":      created.ID,
			"name":    created.Name,
			"todos":   len(todos),
		})
		return 0
	}
	fmt.Printf("Created project %q with %d todos\n", created.Name, len(todos))
	return 0
}

// flattenTodos merges heading todos into one list. The automation
// interface cannot create headings, so grouping is lost on apply.
func flattenTodos(inst template.Instance) []template.InstanceTodo {
	todos := append([]template.InstanceTodo{}, inst.Todos...)
	for _, h := range inst.Headings {
		todos = append(todos, h.Todos...)
	}
	return todos
}
