package port

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/google/uuid"
)

// JobRepository defines persistence operations for compression jobs.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
}
