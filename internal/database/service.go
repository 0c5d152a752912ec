package database

import (
	"github.com/robalyx/modcase/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	cases *service.CaseService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	return &Service{
		cases: service.NewCase(
			db,
			repository.Case(),
			repository.Counter(),
			repository.Edit(),
			repository.Stats(),
			logger,
		),
	}
}

// Case returns the case lifecycle service.
func (s *Service) Case() *service.CaseService {
	return s.cases
}
