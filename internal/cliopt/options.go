package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to
// subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the
// root command router and per-command code.
type GlobalOptions struct {
	// DBPath overrides task database discovery.
	DBPath string

	Format  string
	NoColor bool
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Format: "pretty",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.DBPath, "db", g.DBPath, "path to the task database (default: auto-discover)")
	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.BoolVar(&g.NoColor, "no-color", g.NoColor, "disable colored output")
}
