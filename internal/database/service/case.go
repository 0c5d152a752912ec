package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/models"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// EventSink receives case changes after they have been committed.
type EventSink interface {
	Publish(ctx context.Context, event types.CaseEvent) error
}

// CaseService enforces the case lifecycle: creation, edits, soft-deletion,
// restoration and voiding. Every mutation runs in one transaction so the
// counter, the case row and its edit log never disagree.
type CaseService struct {
	db       *bun.DB
	cases    *models.CaseModel
	counters *models.CounterModel
	edits    *models.EditModel
	stats    *models.CaseStatsModel
	sink     EventSink
	logger   *zap.Logger
}

// NewCase creates a new case service.
func NewCase(
	db *bun.DB,
	cases *models.CaseModel,
	counters *models.CounterModel,
	edits *models.EditModel,
	stats *models.CaseStatsModel,
	logger *zap.Logger,
) *CaseService {
	return &CaseService{
		db:       db,
		cases:    cases,
		counters: counters,
		edits:    edits,
		stats:    stats,
		logger:   logger.Named("case_service"),
	}
}

// SetEventSink registers where committed changes are published.
// It must be called before the service is shared between goroutines.
func (s *CaseService) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Create allocates the next identifier in the case's scope and stores the
// case as active.
func (s *CaseService) Create(ctx context.Context, data *types.NewCase) (*types.Case, error) {
	if err := validateNewCase(data); err != nil {
		return nil, err
	}

	points := types.DefaultPoints
	if data.Points != nil {
		points = *data.Points
	}

	reason := strings.TrimSpace(data.Reason)
	if reason == "" {
		reason = types.DefaultReason
	}

	scope := data.Scope()

	var created *types.Case

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		number, err := s.counters.Next(ctx, tx, scope)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		c := &types.Case{
			CaseID:       types.FormatCaseID(scope, number),
			GuildID:      scope,
			IsGlobal:     scope == types.GlobalScope,
			UserID:       strings.TrimSpace(data.UserID),
			UserTag:      data.UserTag,
			ModeratorID:  strings.TrimSpace(data.ModeratorID),
			ModeratorTag: data.ModeratorTag,
			ActionType:   data.ActionType,
			Reason:       reason,
			Evidence:     strings.TrimSpace(data.Evidence),
			Duration:     strings.TrimSpace(data.Duration),
			Points:       points,
			Status:       enum.CaseStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.cases.Put(ctx, tx, c); err != nil {
			return err
		}

		created = c

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created case",
		zap.String("caseID", created.CaseID),
		zap.String("guildID", created.GuildID),
		zap.String("userID", created.UserID),
		zap.String("actionType", created.ActionType.String()))

	s.emit(ctx, enum.CaseEventCreated, created, created.ModeratorID)

	return created, nil
}

// Get retrieves a case by identifier, including voided cases.
// Identifiers are matched case-insensitively.
func (s *CaseService) Get(ctx context.Context, guildID, caseID string) (*types.Case, error) {
	scope, id, err := resolve(guildID, caseID)
	if err != nil {
		return nil, err
	}

	return s.cases.Get(ctx, scope, id)
}

// Edit changes the reason, evidence or points of an active case and records
// one audit entry per field whose value actually changed.
func (s *CaseService) Edit(
	ctx context.Context, guildID, caseID string, editor types.Actor, changes types.CaseChanges, editReason string,
) (*types.Case, error) {
	scope, id, err := resolve(guildID, caseID)
	if err != nil {
		return nil, err
	}

	editReason = strings.TrimSpace(editReason)

	switch {
	case strings.TrimSpace(editor.ID) == "":
		return nil, fmt.Errorf("%w: editor is required", types.ErrValidation)
	case editReason == "":
		return nil, fmt.Errorf("%w: edit reason is required", types.ErrValidation)
	case changes.IsEmpty():
		return nil, fmt.Errorf("%w: no changes supplied", types.ErrValidation)
	case changes.Reason != nil && strings.TrimSpace(*changes.Reason) == "":
		return nil, fmt.Errorf("%w: reason cannot be blank", types.ErrValidation)
	case changes.Points != nil && *changes.Points < 0:
		return nil, fmt.Errorf("%w: points cannot be negative", types.ErrValidation)
	}

	var updated *types.Case

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.cases.GetForUpdate(ctx, tx, scope, id)
		if err != nil {
			return err
		}

		if !current.IsActive() {
			return fmt.Errorf("%w: cannot edit %s case %s", types.ErrInvalidTransition, current.Status, id)
		}

		if changes.Points != nil && current.ActionType != enum.ActionTypeWarn {
			return fmt.Errorf("%w: points only apply to warn cases", types.ErrValidation)
		}

		fields, edits := diffChanges(current, changes, editor, editReason)
		if len(fields) == 0 {
			return fmt.Errorf("%w: changes match the current values", types.ErrValidation)
		}

		if err := s.edits.Record(ctx, tx, edits); err != nil {
			return err
		}

		if err := s.cases.Update(ctx, tx, scope, id, enum.CaseStatusActive, fields); err != nil {
			return err
		}

		updated, err = s.cases.GetForUpdate(ctx, tx, scope, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Edited case",
		zap.String("caseID", id),
		zap.String("guildID", scope),
		zap.String("editorID", editor.ID))

	s.emit(ctx, enum.CaseEventEdited, updated, editor.ID)

	return updated, nil
}

// SoftDelete hides an active case from default views. A deleted case can be
// restored. Deleting an already deleted case is rejected.
func (s *CaseService) SoftDelete(ctx context.Context, guildID, caseID, deletedBy string) (*types.Case, error) {
	deletedBy = strings.TrimSpace(deletedBy)
	if deletedBy == "" {
		return nil, fmt.Errorf("%w: deleting moderator is required", types.ErrValidation)
	}

	return s.transition(ctx, guildID, caseID, deletedBy, enum.CaseEventDeleted,
		func(c *types.Case, now time.Time) (map[string]any, error) {
			switch c.Status {
			case enum.CaseStatusActive:
				return map[string]any{
					"status":     enum.CaseStatusDeleted,
					"deleted_at": now,
					"deleted_by": deletedBy,
				}, nil
			case enum.CaseStatusDeleted:
				return nil, fmt.Errorf("%w: case %s is already deleted", types.ErrInvalidTransition, c.CaseID)
			default:
				return nil, fmt.Errorf("%w: case %s is voided", types.ErrInvalidTransition, c.CaseID)
			}
		})
}

// Restore returns a soft-deleted case to active and clears its deletion marks.
func (s *CaseService) Restore(ctx context.Context, guildID, caseID, restoredBy string) (*types.Case, error) {
	restoredBy = strings.TrimSpace(restoredBy)
	if restoredBy == "" {
		return nil, fmt.Errorf("%w: restoring moderator is required", types.ErrValidation)
	}

	return s.transition(ctx, guildID, caseID, restoredBy, enum.CaseEventRestored,
		func(c *types.Case, _ time.Time) (map[string]any, error) {
			switch c.Status {
			case enum.CaseStatusDeleted:
				return map[string]any{
					"status":     enum.CaseStatusActive,
					"deleted_at": nil,
					"deleted_by": nil,
				}, nil
			case enum.CaseStatusActive:
				return nil, fmt.Errorf("%w: case %s is already active", types.ErrInvalidTransition, c.CaseID)
			default:
				return nil, fmt.Errorf("%w: case %s is voided", types.ErrInvalidTransition, c.CaseID)
			}
		})
}

// Void permanently seals an active or deleted case. No transition leaves the
// voided state. Deletion marks are kept as they were.
func (s *CaseService) Void(ctx context.Context, guildID, caseID, voidedBy, reason string) (*types.Case, error) {
	voidedBy = strings.TrimSpace(voidedBy)
	reason = strings.TrimSpace(reason)

	switch {
	case voidedBy == "":
		return nil, fmt.Errorf("%w: voiding moderator is required", types.ErrValidation)
	case reason == "":
		return nil, fmt.Errorf("%w: void reason is required", types.ErrValidation)
	}

	return s.transition(ctx, guildID, caseID, voidedBy, enum.CaseEventVoided,
		func(c *types.Case, now time.Time) (map[string]any, error) {
			if c.Status.IsTerminal() {
				return nil, fmt.Errorf("%w: case %s is already voided", types.ErrInvalidTransition, c.CaseID)
			}

			return map[string]any{
				"status":      enum.CaseStatusVoided,
				"voided_at":   now,
				"voided_by":   voidedBy,
				"void_reason": reason,
			}, nil
		})
}

// History returns the edit log of a case, newest first. Voided cases are
// sealed from standard views and return ErrCaseVoided.
func (s *CaseService) History(ctx context.Context, guildID, caseID string) ([]*types.CaseEdit, error) {
	c, err := s.Get(ctx, guildID, caseID)
	if err != nil {
		return nil, err
	}

	if c.IsVoided() {
		return nil, fmt.Errorf("%w: %s", types.ErrCaseVoided, c.CaseID)
	}

	return s.edits.History(ctx, c.GuildID, c.CaseID)
}

// AuditHistory returns the edit log of a case in any status, voided included.
// It is meant for compliance review and must only be reachable by callers
// authorized for it.
func (s *CaseService) AuditHistory(ctx context.Context, guildID, caseID string) ([]*types.CaseEdit, error) {
	c, err := s.Get(ctx, guildID, caseID)
	if err != nil {
		return nil, err
	}

	return s.edits.History(ctx, c.GuildID, c.CaseID)
}

// ListByUser returns a user's cases, newest first. Deleted cases are only
// included when requested. Voided cases are never included.
func (s *CaseService) ListByUser(
	ctx context.Context, guildID, userID string, includeDeleted bool,
) ([]*types.Case, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return nil, err
	}

	return s.cases.ListByUser(ctx, scope, strings.TrimSpace(userID), includeDeleted)
}

// ListDeletedByUser returns a user's soft-deleted cases, newest first.
func (s *CaseService) ListDeletedByUser(ctx context.Context, guildID, userID string) ([]*types.Case, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return nil, err
	}

	return s.cases.ListDeletedByUser(ctx, scope, strings.TrimSpace(userID))
}

// ActiveHistory returns a user's active cases, newest first.
func (s *CaseService) ActiveHistory(ctx context.Context, guildID, userID string) ([]*types.Case, error) {
	return s.ListByUser(ctx, guildID, userID, false)
}

// DeletedHistory returns a user's soft-deleted cases, newest first.
func (s *CaseService) DeletedHistory(ctx context.Context, guildID, userID string) ([]*types.Case, error) {
	return s.ListDeletedByUser(ctx, guildID, userID)
}

// ListByGuild returns a guild's cases matching the filter, newest first.
func (s *CaseService) ListByGuild(
	ctx context.Context, guildID string, filter types.CaseFilter,
) ([]*types.Case, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return nil, err
	}

	switch {
	case filter.Status != 0 && !filter.Status.IsACaseStatus():
		return nil, fmt.Errorf("%w: unknown status %q", types.ErrValidation, filter.Status)
	case filter.ActionType != 0 && !filter.ActionType.IsAActionType():
		return nil, fmt.Errorf("%w: unknown action type %q", types.ErrValidation, filter.ActionType)
	case filter.Limit < 0:
		return nil, fmt.Errorf("%w: limit cannot be negative", types.ErrValidation)
	}

	return s.cases.ListByGuild(ctx, scope, filter)
}

// ListByModerator returns the cases a moderator issued in any guild, newest first.
func (s *CaseService) ListByModerator(ctx context.Context, moderatorID string, limit int) ([]*types.Case, error) {
	moderatorID = strings.TrimSpace(moderatorID)
	if moderatorID == "" {
		return nil, fmt.Errorf("%w: moderator is required", types.ErrValidation)
	}

	return s.cases.ListByModerator(ctx, moderatorID, limit)
}

// UserWarnPoints returns the total points of a user's active warnings.
func (s *CaseService) UserWarnPoints(ctx context.Context, guildID, userID string) (int, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return 0, err
	}

	return s.stats.UserWarnPoints(ctx, scope, strings.TrimSpace(userID))
}

// GuildStats returns case counts for a guild, voided cases excluded.
func (s *CaseService) GuildStats(ctx context.Context, guildID string) (*types.GuildStats, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return nil, err
	}

	return s.stats.GuildStats(ctx, scope)
}

// ModeratorStats ranks a guild's moderators by cases issued since the given time.
func (s *CaseService) ModeratorStats(
	ctx context.Context, guildID string, since time.Time, limit int,
) ([]types.ModeratorStats, error) {
	scope, err := resolveScope(guildID)
	if err != nil {
		return nil, err
	}

	return s.stats.ModeratorStats(ctx, scope, since, limit)
}

// transition loads a case under lock, asks guard for the fields to change
// and applies them conditionally on the status the guard saw.
func (s *CaseService) transition(
	ctx context.Context,
	guildID, caseID, actorID string,
	event enum.CaseEventType,
	guard func(c *types.Case, now time.Time) (map[string]any, error),
) (*types.Case, error) {
	scope, id, err := resolve(guildID, caseID)
	if err != nil {
		return nil, err
	}

	var updated *types.Case

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.cases.GetForUpdate(ctx, tx, scope, id)
		if err != nil {
			return err
		}

		fields, err := guard(current, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := s.cases.Update(ctx, tx, scope, id, current.Status, fields); err != nil {
			return err
		}

		updated, err = s.cases.GetForUpdate(ctx, tx, scope, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Case status changed",
		zap.String("caseID", id),
		zap.String("guildID", scope),
		zap.String("event", event.String()),
		zap.String("status", updated.Status.String()),
		zap.String("actorID", actorID))

	s.emit(ctx, event, updated, actorID)

	return updated, nil
}

// emit publishes a committed change. Failures are logged only since the
// change itself is already durable.
func (s *CaseService) emit(ctx context.Context, eventType enum.CaseEventType, c *types.Case, actorID string) {
	if s.sink == nil {
		return
	}

	if err := s.sink.Publish(ctx, types.NewCaseEvent(eventType, c, actorID)); err != nil {
		s.logger.Warn("Failed to publish case event",
			zap.String("caseID", c.CaseID),
			zap.String("event", eventType.String()),
			zap.Error(err))
	}
}

// diffChanges builds the column updates and audit entries for the fields
// whose values differ from the current case.
func diffChanges(
	current *types.Case, changes types.CaseChanges, editor types.Actor, editReason string,
) (map[string]any, []*types.CaseEdit) {
	fields := make(map[string]any)
	edits := make([]*types.CaseEdit, 0, 3)
	now := time.Now().UTC()

	record := func(column, oldValue, newValue string, value any) {
		fields[column] = value
		edits = append(edits, &types.CaseEdit{
			GuildID:      current.GuildID,
			CaseID:       current.CaseID,
			EditorID:     editor.ID,
			EditorTag:    editor.Tag,
			FieldChanged: column,
			OldValue:     oldValue,
			NewValue:     newValue,
			EditReason:   editReason,
			CreatedAt:    now,
		})
	}

	if changes.Reason != nil {
		reason := strings.TrimSpace(*changes.Reason)
		if reason != current.Reason {
			record("reason", current.Reason, reason, reason)
		}
	}

	if changes.Evidence != nil {
		evidence := strings.TrimSpace(*changes.Evidence)
		if evidence != current.Evidence {
			var value any = evidence
			if evidence == "" {
				value = nil
			}
			record("evidence", current.Evidence, evidence, value)
		}
	}

	if changes.Points != nil && *changes.Points != current.Points {
		record("points", strconv.Itoa(current.Points), strconv.Itoa(*changes.Points), *changes.Points)
	}

	return fields, edits
}

// validateNewCase checks the creation guard.
func validateNewCase(data *types.NewCase) error {
	switch {
	case data == nil:
		return fmt.Errorf("%w: case data is required", types.ErrValidation)
	case strings.TrimSpace(data.GuildID) == "":
		return fmt.Errorf("%w: guild is required", types.ErrValidation)
	case strings.TrimSpace(data.UserID) == "":
		return fmt.Errorf("%w: subject user is required", types.ErrValidation)
	case strings.TrimSpace(data.ModeratorID) == "":
		return fmt.Errorf("%w: moderator is required", types.ErrValidation)
	case !data.ActionType.IsAActionType():
		return fmt.Errorf("%w: unknown action type %q", types.ErrValidation, data.ActionType)
	case data.ActionType.IsPunitive() && strings.TrimSpace(data.Reason) == "":
		return fmt.Errorf("%w: reason is required for %s", types.ErrValidation, data.ActionType)
	case data.Points != nil && *data.Points < 0:
		return fmt.Errorf("%w: points cannot be negative", types.ErrValidation)
	}

	if duration := strings.TrimSpace(data.Duration); duration != "" {
		if !data.ActionType.IsTimeBounded() {
			return fmt.Errorf("%w: %s does not take a duration", types.ErrValidation, data.ActionType)
		}
		if _, err := types.ParseDuration(duration); err != nil {
			return err
		}
	}

	return nil
}

// resolve normalizes a caller-supplied identifier and finds its scope.
func resolve(guildID, caseID string) (string, string, error) {
	scope, id := types.ResolveScope(guildID, caseID)

	switch {
	case id == "":
		return "", "", fmt.Errorf("%w: case id is required", types.ErrValidation)
	case scope == "":
		return "", "", fmt.Errorf("%w: guild is required", types.ErrValidation)
	}

	return scope, id, nil
}

// resolveScope maps a guild identifier to its counter scope.
func resolveScope(guildID string) (string, error) {
	scope, _ := types.ResolveScope(guildID, "")
	if scope == "" {
		return "", fmt.Errorf("%w: guild is required", types.ErrValidation)
	}

	return scope, nil
}
