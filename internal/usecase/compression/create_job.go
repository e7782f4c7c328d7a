package compression

import (
	"context"
	"fmt"

	"github.com/fhuszti/way2enjoy-go/internal/logger"
	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
)

type jobCreatorSrv struct {
	repo    port.JobRepository
	strg    port.Storage
	tasks   port.TaskDispatcher
	newUUID port.UUIDGen
}

// compile-time check: *jobCreatorSrv must satisfy port.JobCreator
var _ port.JobCreator = (*jobCreatorSrv)(nil)

func NewJobCreator(repo port.JobRepository, strg port.Storage, tasks port.TaskDispatcher, uuidGen port.UUIDGen) port.JobCreator {
	return &jobCreatorSrv{repo, strg, tasks, uuidGen}
}

func (s *jobCreatorSrv) CreateJob(ctx context.Context, in port.CreateJobInput) (port.CreateJobOutput, error) {
	exists, err := s.strg.FileExists(ctx, in.Bucket, in.ObjectKey)
	if err != nil {
		return port.CreateJobOutput{}, fmt.Errorf("failed to check if object %q exists in bucket %q: %w", in.ObjectKey, in.Bucket, err)
	}
	if !exists {
		return port.CreateJobOutput{}, ErrObjectNotFound
	}

	job := &model.Job{
		ID:        s.newUUID(),
		Bucket:    in.Bucket,
		ObjectKey: in.ObjectKey,
		Resize:    in.Resize,
		Status:    model.JobStatusPending,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return port.CreateJobOutput{}, fmt.Errorf("failed to create job: %w", err)
	}

	if err := s.tasks.EnqueueOptimiseObject(ctx, job.ID); err != nil {
		return port.CreateJobOutput{}, fmt.Errorf("failed to enqueue job #%s: %w", job.ID, err)
	}
	logger.Infof(ctx, "📨  job #%s queued for %s/%s", job.ID, in.Bucket, in.ObjectKey)

	return port.CreateJobOutput{ID: job.ID}, nil
}
