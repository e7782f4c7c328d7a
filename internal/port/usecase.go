package port

import (
	"context"

	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/google/uuid"
)

type UUIDGen func() uuid.UUID

// JobCreator registers a compression job for an object and queues it.
type JobCreator interface {
	CreateJob(ctx context.Context, in CreateJobInput) (CreateJobOutput, error)
}
type CreateJobInput struct {
	Bucket    string
	ObjectKey string
	Resize    *model.Resize
}
type CreateJobOutput struct {
	ID uuid.UUID `json:"id"`
}

// JobGetter returns a compression job.
type JobGetter interface {
	GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error)
}

// ObjectOptimiser runs a queued job: the object goes through the compression
// API and the result is written back next to it.
type ObjectOptimiser interface {
	OptimiseObject(ctx context.Context, id uuid.UUID) error
}
