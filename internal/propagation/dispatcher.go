// Package propagation fans global cases out to every guild they apply to.
package propagation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/modcase/internal/database/models"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/setup/config"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Executor applies a case's action to a single guild on the platform.
type Executor interface {
	Execute(ctx context.Context, guildID string, c *types.Case) error
}

// Dispatcher runs a global case against many guilds with bounded
// parallelism. Each guild succeeds or fails on its own.
type Dispatcher struct {
	executor       Executor
	logs           *models.PropagationModel
	maxConcurrency int
	timeout        time.Duration
	logger         *zap.Logger
}

// NewDispatcher creates a dispatcher. logs may be nil to skip persistence.
func NewDispatcher(
	executor Executor, logs *models.PropagationModel, cfg *config.Propagation, logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		executor:       executor,
		logs:           logs,
		maxConcurrency: max(cfg.MaxConcurrency, 1),
		timeout:        cfg.TargetTimeout(),
		logger:         logger.Named("propagation"),
	}
}

// Propagate executes an active global case in every target guild. The case
// must already be committed. A failing guild never stops the others, and its
// error is reported in the result instead of being returned.
//
// The returned error is only non-nil when the case cannot be propagated at
// all, or when the run completed but its log could not be stored. In the
// latter case the result is still returned.
func (d *Dispatcher) Propagate(
	ctx context.Context, c *types.Case, guildIDs []string, requestedBy string,
) (*types.PropagationResult, error) {
	switch {
	case c == nil:
		return nil, fmt.Errorf("%w: case is required", types.ErrValidation)
	case !c.ActionType.IsGlobal():
		return nil, fmt.Errorf("%w: %s is not a global action", types.ErrValidation, c.ActionType)
	case !c.IsActive():
		return nil, fmt.Errorf("%w: cannot propagate %s case %s", types.ErrInvalidTransition, c.Status, c.CaseID)
	}

	targets := uniqueTargets(guildIDs)
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no target guilds", types.ErrValidation)
	}

	result := &types.PropagationResult{
		BatchID:   uuid.New().String(),
		CaseID:    c.CaseID,
		Succeeded: make([]string, 0, len(targets)),
		Failed:    make(map[string]string),
	}

	var mu sync.Mutex

	startedAt := time.Now().UTC()
	p := pool.New().WithContext(ctx).WithMaxGoroutines(d.maxConcurrency)

	for _, guildID := range targets {
		p.Go(func(ctx context.Context) error {
			targetCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			err := d.executor.Execute(targetCtx, guildID, c)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed[guildID] = err.Error()
				d.logger.Warn("Propagation failed for guild",
					zap.String("batchID", result.BatchID),
					zap.String("caseID", c.CaseID),
					zap.String("guildID", guildID),
					zap.Error(err))

				return nil
			}

			result.Succeeded = append(result.Succeeded, guildID)

			return nil
		})
	}

	_ = p.Wait()
	slices.Sort(result.Succeeded)

	d.logger.Info("Propagated case",
		zap.String("batchID", result.BatchID),
		zap.String("caseID", c.CaseID),
		zap.String("actionType", c.ActionType.String()),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)))

	if d.logs == nil {
		return result, nil
	}

	failed := make([]string, 0, len(result.Failed))
	for guildID := range result.Failed {
		failed = append(failed, guildID)
	}
	slices.Sort(failed)

	err := d.logs.Log(context.WithoutCancel(ctx), &types.PropagationLog{
		BatchID:        result.BatchID,
		CaseID:         c.CaseID,
		ActionType:     c.ActionType,
		RequestedBy:    requestedBy,
		SucceededCount: len(result.Succeeded),
		FailedCount:    len(failed),
		FailedGuildIDs: failed,
		StartedAt:      startedAt,
		FinishedAt:     time.Now().UTC(),
	})
	if err != nil {
		return result, fmt.Errorf("propagation %s completed but was not logged: %w", result.BatchID, err)
	}

	return result, nil
}

// History returns the stored propagation runs of a case, newest first.
func (d *Dispatcher) History(ctx context.Context, caseID string) ([]*types.PropagationLog, error) {
	if d.logs == nil {
		return nil, nil
	}

	return d.logs.ListByCase(ctx, types.NormalizeCaseID(caseID))
}

// uniqueTargets trims and deduplicates guild IDs, dropping the global sentinel.
func uniqueTargets(guildIDs []string) []string {
	seen := make(map[string]struct{}, len(guildIDs))
	targets := make([]string, 0, len(guildIDs))

	for _, guildID := range guildIDs {
		guildID = strings.TrimSpace(guildID)
		if guildID == "" || strings.EqualFold(guildID, types.GlobalScope) {
			continue
		}

		if _, ok := seen[guildID]; ok {
			continue
		}

		seen[guildID] = struct{}{}
		targets = append(targets, guildID)
	}

	return targets
}
