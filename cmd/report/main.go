package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spacesedan/sentireport/config"
	"github.com/spacesedan/sentireport/internal/app"
	"github.com/spacesedan/sentireport/internal/logging"
)

func main() {
	input := flag.String("input", "", "CSV file of posts to analyze")
	output := flag.String("output", "", "Folder to write the chart and report into")
	column := flag.String("column", "", "Name of the column holding the post text")
	noOpen := flag.Bool("no-open", false, "Write the report without opening it")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(settings.LogLevel)

	overrides := config.Overrides{InputPath: *input, OutputDir: *output, TextColumn: *column}
	if *noOpen {
		open := false
		overrides.OpenReport = &open
	}
	settings.Apply(overrides)

	if err := settings.Validate(); err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := app.Run(ctx, settings, app.NewDeps(settings)); err != nil {
		stop()
		os.Exit(1)
	}
}
