package commands

import (
	"context"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// CaseCommands returns the commands that create and change cases.
func CaseCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create",
			Usage: "Issue a new case",
			Description: `Creates a case with the next identifier of the guild, or of the
global scope for global actions.

Examples:
  cases create -g 81384788765712384 --user 42 --moderator 7 --action warn --reason "spam"
  cases create -g 81384788765712384 --user 42 --moderator 7 --action mute --duration 1d12h --reason "raid"
  cases create -g GLOBAL --user 42 --moderator 7 --action global_ban --reason "scam links"`,
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "user", Usage: "ID of the user the action targets", Required: true},
				&cli.StringFlag{Name: "user-tag", Usage: "Display tag of the user"},
				&cli.StringFlag{Name: "moderator", Usage: "ID of the moderator issuing the case", Required: true},
				&cli.StringFlag{Name: "moderator-tag", Usage: "Display tag of the moderator"},
				&cli.StringFlag{Name: "action", Usage: "Action type such as warn, mute or global_ban", Required: true},
				&cli.StringFlag{Name: "reason", Usage: "Why the action was taken"},
				&cli.StringFlag{Name: "evidence", Usage: "Supporting evidence such as message links"},
				&cli.StringFlag{Name: "duration", Usage: "Length of a time-bounded action such as 30m or 7d"},
				&cli.IntFlag{Name: "points", Usage: "Warning weight (defaults to 1)"},
			},
			Action: handleCreate(deps),
		},
		{
			Name:      "edit",
			Usage:     "Change the reason, evidence or points of an active case",
			ArgsUsage: "CASE_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "editor", Usage: "ID of the moderator making the edit", Required: true},
				&cli.StringFlag{Name: "editor-tag", Usage: "Display tag of the editor"},
				&cli.StringFlag{Name: "edit-reason", Usage: "Why the case is being edited", Required: true},
				&cli.StringFlag{Name: "reason", Usage: "New reason"},
				&cli.StringFlag{Name: "evidence", Usage: "New evidence, empty to clear it"},
				&cli.IntFlag{Name: "points", Usage: "New warning weight"},
			},
			Action: handleEdit(deps),
		},
		{
			Name:      "delete",
			Usage:     "Soft-delete an active case",
			ArgsUsage: "CASE_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "by", Usage: "ID of the moderator deleting the case", Required: true},
			},
			Action: handleDelete(deps),
		},
		{
			Name:      "restore",
			Usage:     "Restore a soft-deleted case",
			ArgsUsage: "CASE_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "by", Usage: "ID of the moderator restoring the case", Required: true},
			},
			Action: handleRestore(deps),
		},
		{
			Name:      "void",
			Usage:     "Permanently invalidate a case",
			ArgsUsage: "CASE_ID",
			Flags: []cli.Flag{
				guildFlag(),
				&cli.StringFlag{Name: "by", Usage: "ID of the moderator voiding the case", Required: true},
				&cli.StringFlag{Name: "reason", Usage: "Why the case is void", Required: true},
			},
			Action: handleVoid(deps),
		},
	}
}

func handleCreate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		action, err := types.ParseActionType(c.String("action"))
		if err != nil {
			return err
		}

		data := &types.NewCase{
			GuildID:      c.String("guild"),
			UserID:       c.String("user"),
			UserTag:      c.String("user-tag"),
			ModeratorID:  c.String("moderator"),
			ModeratorTag: c.String("moderator-tag"),
			ActionType:   action,
			Reason:       c.String("reason"),
			Evidence:     c.String("evidence"),
			Duration:     c.String("duration"),
		}

		if c.IsSet("points") {
			points := int(c.Int("points"))
			data.Points = &points
		}

		created, err := deps.Cases.Create(ctx, data)
		if err != nil {
			return err
		}

		deps.Logger.Info("Created case",
			zap.String("caseID", created.CaseID),
			zap.String("guildID", created.GuildID),
			zap.String("actionType", created.ActionType.String()))

		return writeJSON(c, created)
	}
}

func handleEdit(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		var changes types.CaseChanges
		if c.IsSet("reason") {
			reason := c.String("reason")
			changes.Reason = &reason
		}
		if c.IsSet("evidence") {
			evidence := c.String("evidence")
			changes.Evidence = &evidence
		}
		if c.IsSet("points") {
			points := int(c.Int("points"))
			changes.Points = &points
		}

		editor := types.Actor{ID: c.String("editor"), Tag: c.String("editor-tag")}

		updated, err := deps.Cases.Edit(ctx, c.String("guild"), caseID, editor, changes, c.String("edit-reason"))
		if err != nil {
			return err
		}

		return writeJSON(c, updated)
	}
}

func handleDelete(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		deleted, err := deps.Cases.SoftDelete(ctx, c.String("guild"), caseID, c.String("by"))
		if err != nil {
			return err
		}

		return writeJSON(c, deleted)
	}
}

func handleRestore(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		restored, err := deps.Cases.Restore(ctx, c.String("guild"), caseID, c.String("by"))
		if err != nil {
			return err
		}

		return writeJSON(c, restored)
	}
}

func handleVoid(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		caseID, err := singleArg(c, ErrCaseIDRequired)
		if err != nil {
			return err
		}

		voided, err := deps.Cases.Void(ctx, c.String("guild"), caseID, c.String("by"), c.String("reason"))
		if err != nil {
			return err
		}

		deps.Logger.Warn("Voided case",
			zap.String("caseID", voided.CaseID),
			zap.String("guildID", voided.GuildID),
			zap.String("voidedBy", voided.VoidedBy))

		return writeJSON(c, voided)
	}
}
