package commands

import (
	"context"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/urfave/cli/v3"
)

// CounterStatus is printed by the counter command.
type CounterStatus struct {
	Scope   string `json:"scope"`
	Current int64  `json:"current"`
	Next    string `json:"next"`
}

// CounterCommands returns commands for inspecting case number allocation.
func CounterCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "counter",
			Usage:     "Show the last allocated case number of a scope",
			ArgsUsage: "SCOPE",
			Description: `SCOPE is a guild ID or GLOBAL.

Examples:
  db counter 81384788765712384
  db counter GLOBAL`,
			Action: handleCounter(deps),
		},
	}
}

func handleCounter(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrScopeRequired
		}

		scope, _ := types.ResolveScope(c.Args().First(), "")

		current, err := deps.DB.Model().Counter().Current(ctx, scope)
		if err != nil {
			return err
		}

		return writeJSON(c, CounterStatus{
			Scope:   scope,
			Current: current,
			Next:    types.FormatCaseID(scope, current+1),
		})
	}
}
