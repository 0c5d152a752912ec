package commands

import (
	"context"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// PropagationCommands returns the commands that push global cases to guilds
// and follow the event stream.
func PropagationCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "propagate",
			Usage:     "Apply an active global case in each target guild",
			ArgsUsage: "CASE_ID",
			Description: `Runs the action of a global case against every target guild in
parallel. A guild that fails is reported without stopping the others.

Examples:
  cases propagate GLOBAL-0003 --by 7 --target 81384788765712384 --target 175928847299117063`,
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "target", Aliases: []string{"t"}, Usage: "Guild ID to apply the case in", Required: true},
				&cli.StringFlag{Name: "by", Usage: "ID of the moderator requesting propagation", Required: true},
			},
			Action: handlePropagate(deps),
		},
		{
			Name:      "propagations",
			Usage:     "List past propagation runs of a global case",
			ArgsUsage: "CASE_ID",
			Action:    handlePropagations(deps),
		},
		{
			Name:  "events",
			Usage: "Show the most recent case events from the stream",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Number of events", Value: 20},
			},
			Action: handleEvents(deps),
		},
	}
}

func handlePropagate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if deps.Dispatcher == nil {
			return ErrPropagationDisabled
		}

		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		found, err := deps.Cases.Get(ctx, types.GlobalScope, caseID)
		if err != nil {
			return err
		}

		result, err := deps.Dispatcher.Propagate(ctx, found, c.StringSlice("target"), c.String("by"))
		if result == nil {
			return err
		}
		if err != nil {
			deps.Logger.Error("Propagation finished but was not logged", zap.Error(err))
		}

		return writeJSON(c, result)
	}
}

func handlePropagations(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if deps.Dispatcher == nil {
			return ErrPropagationDisabled
		}

		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		logs, err := deps.Dispatcher.History(ctx, caseID)
		if err != nil {
			return err
		}

		return writeJSON(c, logs)
	}
}

func handleEvents(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if deps.Events == nil {
			return ErrEventsDisabled
		}

		recent, err := deps.Events.Recent(ctx, c.Int("count"))
		if err != nil {
			return err
		}

		return writeJSON(c, recent)
	}
}
