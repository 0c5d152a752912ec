package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/robalyx/modcase/cmd/cases/commands"
	"github.com/robalyx/modcase/internal/setup"
	"github.com/urfave/cli/v3"
)

// LogDir is where session logs are written.
const LogDir = "logs/cases_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup.InitializeApp(ctx, "cases", LogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	deps := &commands.CLIDependencies{
		Cases:      app.DB.Service().Case(),
		Dispatcher: app.Dispatcher,
		Events:     app.Events,
		Logger:     app.Logger,
	}

	cmd := &cli.Command{
		Name:  "cases",
		Usage: "Moderation case management tool",
		Commands: slices.Concat(
			commands.CaseCommands(deps),
			commands.QueryCommands(deps),
			commands.PropagationCommands(deps),
		),
	}

	return cmd.Run(ctx, os.Args)
}
