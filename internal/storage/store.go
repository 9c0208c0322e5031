package storage

import (
	"context"
	"errors"

	"coevo/internal/model"
)

var ErrRunNotFound = errors.New("run not found")

// Store keeps finished run records for the lifetime of the process.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	// ListRuns returns records newest first; limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
}
