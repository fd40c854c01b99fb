package ingest

import (
	"context"
	"fmt"

	"github.com/cosmegraph/cosmegraph/internal/database"
	"github.com/cosmegraph/cosmegraph/internal/database/models"
	"github.com/google/uuid"
)

// RunLog records pipeline runs in a RunRepository: pending on creation,
// processing while batches commit, then completed or failed.
type RunLog struct {
	repo database.RunRepository
	run  *models.IngestRun
}

func NewRunLog(repo database.RunRepository, mode, csvPath string) *RunLog {
	return &RunLog{
		repo: repo,
		run: &models.IngestRun{
			ID:      uuid.NewString(),
			Mode:    mode,
			CSVPath: csvPath,
			Status:  models.RunStatusPending,
		},
	}
}

// ID returns the run identifier.
func (l *RunLog) ID() string { return l.run.ID }

func (l *RunLog) Start(ctx context.Context) error {
	if err := l.repo.CreateRun(ctx, l.run); err != nil {
		return fmt.Errorf("create run %s: %w", l.run.ID, err)
	}
	l.run.Status = models.RunStatusProcessing
	return l.update(ctx)
}

func (l *RunLog) Progress(ctx context.Context, s Summary) error {
	l.apply(s)
	return l.update(ctx)
}

func (l *RunLog) Finish(ctx context.Context, s Summary, runErr error) error {
	l.apply(s)
	if runErr != nil {
		l.run.Status = models.RunStatusFailed
		l.run.ErrorMessage = runErr.Error()
	} else {
		l.run.Status = models.RunStatusCompleted
	}
	// The run context may already be cancelled; the outcome still needs writing.
	return l.update(context.WithoutCancel(ctx))
}

func (l *RunLog) apply(s Summary) {
	l.run.BatchesCommitted = s.Batches
	l.run.ProductsCommitted = s.ProductsCommitted
	l.run.RowsSkipped = s.RowsSkipped
	l.run.NewIngredients = s.NewIngredients
}

func (l *RunLog) update(ctx context.Context) error {
	if err := l.repo.UpdateRun(ctx, l.run); err != nil {
		return fmt.Errorf("update run %s: %w", l.run.ID, err)
	}
	return nil
}
