package port

import (
	"context"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
)

// GenerationRepository defines persistence operations for Generation
type GenerationRepository interface {
	Create(ctx context.Context, gen *entity.Generation) error
	GetByID(ctx context.Context, id string) (*entity.Generation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Generation, error)
}
