package commands

import (
	"context"
	"time"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/urfave/cli/v3"
)

// UserPoints is printed by the points command.
type UserPoints struct {
	GuildID string `json:"guildId"`
	UserID  string `json:"userId"`
	Points  int    `json:"points"`
}

// QueryCommands returns the read-only case commands.
func QueryCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "get",
			Usage:     "Show a case in any status",
			ArgsUsage: "CASE_ID",
			Flags:     []cli.Flag{guildFlag()},
			Action:    handleGet(deps),
		},
		{
			Name:  "list",
			Usage: "List a guild's cases, newest first",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "status", Usage: "Only cases in this status (active, deleted, voided)"},
				&cli.StringFlag{Name: "action", Usage: "Only cases of this action type"},
				&cli.StringFlag{Name: "moderator", Usage: "Only cases issued by this moderator"},
				&cli.BoolFlag{Name: "include-voided", Usage: "Include voided cases"},
				&cli.IntFlag{Name: "limit", Usage: "Maximum number of cases (0 for all)", Value: 50},
			},
			Action: handleList(deps),
		},
		{
			Name:      "user",
			Usage:     "List a user's cases, newest first",
			ArgsUsage: "USER_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted cases"},
			},
			Action: handleUser(deps),
		},
		{
			Name:      "deleted",
			Usage:     "List a user's soft-deleted cases, newest first",
			ArgsUsage: "USER_ID",
			Flags:     []cli.Flag{guildFlag()},
			Action:    handleDeleted(deps),
		},
		{
			Name:      "moderator",
			Usage:     "List the cases a moderator issued in any guild",
			ArgsUsage: "MODERATOR_ID",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Usage: "Maximum number of cases (0 for all)", Value: 50},
			},
			Action: handleModerator(deps),
		},
		{
			Name:      "history",
			Usage:     "Show the edit history of a case",
			ArgsUsage: "CASE_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.BoolFlag{Name: "audit", Usage: "Include the history of voided cases"},
			},
			Action: handleHistory(deps),
		},
		{
			Name:      "points",
			Usage:     "Sum the points of a user's active warnings",
			ArgsUsage: "USER_ID",
			Flags:     []cli.Flag{guildFlag()},
			Action:    handlePoints(deps),
		},
		{
			Name:   "stats",
			Usage:  "Count a guild's cases by action and status",
			Flags:  []cli.Flag{guildFlag()},
			Action: handleStats(deps),
		},
		{
			Name:  "moderators",
			Usage: "Rank a guild's moderators by cases issued",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "since", Usage: "Look-back window such as 7d or 2w", Value: "30d"},
				&cli.IntFlag{Name: "limit", Usage: "Maximum number of moderators (0 for all)", Value: 10},
			},
			Action: handleModerators(deps),
		},
	}
}

func handleGet(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		found, err := deps.Cases.Get(ctx, c.String("guild"), caseID)
		if err != nil {
			return err
		}

		return writeJSON(c, found)
	}
}

func handleList(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		filter := types.CaseFilter{
			ModeratorID:   c.String("moderator"),
			IncludeVoided: c.Bool("include-voided"),
			Limit:         int(c.Int("limit")),
		}

		var err error
		if c.IsSet("status") {
			if filter.Status, err = types.ParseCaseStatus(c.String("status")); err != nil {
				return err
			}
		}
		if c.IsSet("action") {
			if filter.ActionType, err = types.ParseActionType(c.String("action")); err != nil {
				return err
			}
		}

		cases, err := deps.Cases.ListByGuild(ctx, c.String("guild"), filter)
		if err != nil {
			return err
		}

		return writeJSON(c, cases)
	}
}

func handleUser(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		userID, err := singleArg(c, ErrUserIDRequired)
		if err != nil {
			return err
		}

		cases, err := deps.Cases.ListByUser(ctx, c.String("guild"), userID, c.Bool("include-deleted"))
		if err != nil {
			return err
		}

		return writeJSON(c, cases)
	}
}

func handleDeleted(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		userID, err := singleArg(c, ErrUserIDRequired)
		if err != nil {
			return err
		}

		cases, err := deps.Cases.DeletedHistory(ctx, c.String("guild"), userID)
		if err != nil {
			return err
		}

		return writeJSON(c, cases)
	}
}

func handleModerator(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		moderatorID, err := singleArg(c, ErrModeratorRequired)
		if err != nil {
			return err
		}

		cases, err := deps.Cases.ListByModerator(ctx, moderatorID, int(c.Int("limit")))
		if err != nil {
			return err
		}

		return writeJSON(c, cases)
	}
}

func handleHistory(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		var edits []*types.CaseEdit
		if c.Bool("audit") {
			edits, err = deps.Cases.AuditHistory(ctx, c.String("guild"), caseID)
		} else {
			edits, err = deps.Cases.History(ctx, c.String("guild"), caseID)
		}
		if err != nil {
			return err
		}

		return writeJSON(c, edits)
	}
}

func handlePoints(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		userID, err := singleArg(c, ErrUserIDRequired)
		if err != nil {
			return err
		}

		points, err := deps.Cases.UserWarnPoints(ctx, c.String("guild"), userID)
		if err != nil {
			return err
		}

		return writeJSON(c, UserPoints{GuildID: c.String("guild"), UserID: userID, Points: points})
	}
}

func handleStats(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		stats, err := deps.Cases.GuildStats(ctx, c.String("guild"))
		if err != nil {
			return err
		}

		return writeJSON(c, stats)
	}
}

func handleModerators(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		window, err := types.ParseDuration(c.String("since"))
		if err != nil {
			return err
		}

		ranking, err := deps.Cases.ModeratorStats(ctx, c.String("guild"), time.Now().Add(-window), int(c.Int("limit")))
		if err != nil {
			return err
		}

		return writeJSON(c, ranking)
	}
}
