package service

import (
	"context"
	"fmt"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
)

// HistoryService reads the list of generated artifacts
type HistoryService interface {
	ListGenerations(ctx context.Context, limit, offset int) ([]*entity.Generation, error)
	GetGeneration(ctx context.Context, id string) (*entity.Generation, error)
}

type historyServiceImpl struct {
	generationRepo port.GenerationRepository
	logger         Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(generationRepo port.GenerationRepository, logger Logger) HistoryService {
	return &historyServiceImpl{
		generationRepo: generationRepo,
		logger:         logger,
	}
}

// ListGenerations returns the newest generations first
func (s *historyServiceImpl) ListGenerations(ctx context.Context, limit, offset int) ([]*entity.Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	gens, err := s.generationRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list generations", "error", err)
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return gens, nil
}

// GetGeneration returns one generation by id
func (s *historyServiceImpl) GetGeneration(ctx context.Context, id string) (*entity.Generation, error) {
	gen, err := s.generationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get generation", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return gen, nil
}
