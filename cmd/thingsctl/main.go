package main

import (
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/thingsctl/thingsctl/internal/cli"
	"github.com/thingsctl/thingsctl/internal/config"
)

func main() {
	level := slog.LevelError
	if cfg, err := config.Load(); err == nil {
		level = cfg.LogLevel()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(cli.Execute(os.Args[1:]))
}
