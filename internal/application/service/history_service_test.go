package service

import (
	"context"
	"testing"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
)

type recordingRepo struct {
	mockGenerationRepo
	limit, offset int
}

func (r *recordingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Generation, error) {
	r.limit, r.offset = limit, offset
	return r.created, nil
}

func TestHistoryService_ListGenerations_Defaults(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewHistoryService(repo, nopLogger{})

	if _, err := svc.ListGenerations(context.Background(), 0, -5); err != nil {
		t.Fatalf("ListGenerations() error = %v", err)
	}
	if repo.limit != 20 || repo.offset != 0 {
		t.Errorf("limit = %d offset = %d, want 20 and 0", repo.limit, repo.offset)
	}
}

func TestHistoryService_GetGeneration(t *testing.T) {
	repo := &recordingRepo{}
	_ = repo.Create(context.Background(), &entity.Generation{Kind: entity.KindReport})
	svc := NewHistoryService(repo, nopLogger{})

	gen, err := svc.GetGeneration(context.Background(), "gen-1")
	if err != nil || gen == nil {
		t.Fatalf("GetGeneration() = %v, %v", gen, err)
	}

	gen, err = svc.GetGeneration(context.Background(), "other")
	if err != nil || gen != nil {
		t.Errorf("GetGeneration(other) = %v, %v; want nil, nil", gen, err)
	}
}
