package compression

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fhuszti/way2enjoy-go/internal/model"
	"github.com/fhuszti/way2enjoy-go/internal/port"
	"github.com/google/uuid"
)

type jobGetterSrv struct {
	repo port.JobRepository
}

// compile-time check: *jobGetterSrv must satisfy port.JobGetter
var _ port.JobGetter = (*jobGetterSrv)(nil)

func NewJobGetter(repo port.JobRepository) port.JobGetter {
	return &jobGetterSrv{repo}
}

func (s *jobGetterSrv) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}
