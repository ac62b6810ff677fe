package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
)

// GenerationRepository implements port.GenerationRepository
type GenerationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGenerationRepository creates a new generation repository
func NewGenerationRepository(db *sql.DB, logger *zap.Logger) port.GenerationRepository {
	return &GenerationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a generation, assigning a new id when it has none
func (r *GenerationRepository) Create(ctx context.Context, gen *entity.Generation) error {
	if gen.ID == "" {
		gen.ID = uuid.NewString()
	}
	if gen.CreatedAt.IsZero() {
		gen.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO generations (
			id, kind, format, file_path, filter, row_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		gen.ID,
		gen.Kind,
		gen.Format,
		gen.FilePath,
		gen.Filter,
		gen.RowCount,
		gen.CreatedAt.UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to create generation", zap.String("id", gen.ID), zap.Error(err))
		return fmt.Errorf("failed to create generation: %w", err)
	}

	return nil
}

// GetByID retrieves a generation by id; nil when it does not exist
func (r *GenerationRepository) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	query := `
		SELECT id, kind, format, file_path, filter, row_count, created_at
		FROM generations
		WHERE id = ?
	`

	var gen entity.Generation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&gen.ID,
		&gen.Kind,
		&gen.Format,
		&gen.FilePath,
		&gen.Filter,
		&gen.RowCount,
		&gen.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get generation by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}

	return &gen, nil
}

// List returns generations, newest first
func (r *GenerationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Generation, error) {
	query := `
		SELECT id, kind, format, file_path, filter, row_count, created_at
		FROM generations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list generations", zap.Error(err))
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var gens []*entity.Generation
	for rows.Next() {
		var gen entity.Generation
		err := rows.Scan(
			&gen.ID,
			&gen.Kind,
			&gen.Format,
			&gen.FilePath,
			&gen.Filter,
			&gen.RowCount,
			&gen.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gens = append(gens, &gen)
	}

	return gens, rows.Err()
}

// Verify interface compliance
var _ port.GenerationRepository = (*GenerationRepository)(nil)
