package database

import (
	"github.com/robalyx/modcase/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	cases       *models.CaseModel
	counter     *models.CounterModel
	edit        *models.EditModel
	stats       *models.CaseStatsModel
	propagation *models.PropagationModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		cases:       models.NewCase(db, logger),
		counter:     models.NewCounter(db, logger),
		edit:        models.NewEdit(db, logger),
		stats:       models.NewCaseStats(db, logger),
		propagation: models.NewPropagation(db, logger),
	}
}

// Case returns the case model repository.
func (r *Repository) Case() *models.CaseModel {
	return r.cases
}

// Counter returns the case counter model repository.
func (r *Repository) Counter() *models.CounterModel {
	return r.counter
}

// Edit returns the case edit model repository.
func (r *Repository) Edit() *models.EditModel {
	return r.edit
}

// Stats returns the case statistics model repository.
func (r *Repository) Stats() *models.CaseStatsModel {
	return r.stats
}

// Propagation returns the propagation log model repository.
func (r *Repository) Propagation() *models.PropagationModel {
	return r.propagation
}
