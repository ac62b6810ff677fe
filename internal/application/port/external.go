package port

import (
	"context"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
)

// RecordSource defines the remote record store operations
type RecordSource interface {
	FetchAll(ctx context.Context, filter string) ([]record.Record, error)
}
